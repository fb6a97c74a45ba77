package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// ButtonBehavior реализует интерактивный блок-кнопку
type ButtonBehavior struct{}

// ID возвращает идентификатор блока
func (b *ButtonBehavior) ID() block.BlockID {
	return block.ButtonBlockID
}

// Name возвращает имя блока
func (b *ButtonBehavior) Name() string {
	return "Button"
}

// Opaque возвращает true
func (b *ButtonBehavior) Opaque() bool {
	return true
}

// AtlasTiles возвращает тайлы с отдельной текстурой лицевых граней
func (b *ButtonBehavior) AtlasTiles() [6][2]uint8 {
	return [6][2]uint8{
		{3, 0}, // +X
		{3, 0}, // -X
		{3, 1}, // +Y
		{3, 1}, // -Y
		{3, 0}, // +Z
		{3, 0}, // -Z
	}
}
