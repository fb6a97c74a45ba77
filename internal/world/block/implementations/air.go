package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// AirBehavior реализует пустой блок
type AirBehavior struct{}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// Opaque возвращает false: воздух прозрачен
func (b *AirBehavior) Opaque() bool {
	return false
}

// AtlasTiles возвращает нулевые тайлы — воздух никогда не рисуется
func (b *AirBehavior) AtlasTiles() [6][2]uint8 {
	return [6][2]uint8{}
}
