package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// SandBehavior реализует блок песка
type SandBehavior struct{}

// ID возвращает идентификатор блока
func (b *SandBehavior) ID() block.BlockID {
	return block.SandBlockID
}

// Name возвращает имя блока
func (b *SandBehavior) Name() string {
	return "Sand"
}

// Opaque возвращает true
func (b *SandBehavior) Opaque() bool {
	return true
}

// AtlasTiles возвращает одинаковый тайл для всех граней
func (b *SandBehavior) AtlasTiles() [6][2]uint8 {
	return [6][2]uint8{{2, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 0}}
}
