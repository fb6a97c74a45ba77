package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// WaterBehavior реализует блок воды
type WaterBehavior struct{}

// ID возвращает идентификатор блока
func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

// Name возвращает имя блока
func (b *WaterBehavior) Name() string {
	return "Water"
}

// Opaque возвращает false: вода прозрачна, сквозь неё можно двигаться,
// и она не отсекает грани соседних блоков
func (b *WaterBehavior) Opaque() bool {
	return false
}

// AtlasTiles возвращает одинаковый тайл для всех граней
func (b *WaterBehavior) AtlasTiles() [6][2]uint8 {
	return [6][2]uint8{{2, 1}, {2, 1}, {2, 1}, {2, 1}, {2, 1}, {2, 1}}
}
