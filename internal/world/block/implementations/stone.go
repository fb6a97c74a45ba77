package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// StoneBehavior реализует блок камня
type StoneBehavior struct{}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// Opaque возвращает true
func (b *StoneBehavior) Opaque() bool {
	return true
}

// AtlasTiles возвращает одинаковый тайл для всех граней
func (b *StoneBehavior) AtlasTiles() [6][2]uint8 {
	return [6][2]uint8{{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}}
}
