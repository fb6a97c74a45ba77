package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// DirtBehavior реализует блок земли
type DirtBehavior struct{}

// ID возвращает идентификатор блока
func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

// Name возвращает имя блока
func (b *DirtBehavior) Name() string {
	return "Dirt"
}

// Opaque возвращает true
func (b *DirtBehavior) Opaque() bool {
	return true
}

// AtlasTiles возвращает тайлы атласа: травяной верх, земляной низ,
// переходные боковые грани
func (b *DirtBehavior) AtlasTiles() [6][2]uint8 {
	return [6][2]uint8{
		{1, 0}, // +X
		{1, 0}, // -X
		{0, 0}, // +Y
		{0, 1}, // -Y
		{1, 0}, // +Z
		{1, 0}, // -Z
	}
}
