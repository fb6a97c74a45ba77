package implementations

import "github.com/annel0/voxel-sim/internal/world/block"

// init регистрирует все стандартные поведения блоков
func init() {
	block.Register(block.AirBlockID, &AirBehavior{})
	block.Register(block.DirtBlockID, &DirtBehavior{})
	block.Register(block.StoneBlockID, &StoneBehavior{})
	block.Register(block.SandBlockID, &SandBehavior{})
	block.Register(block.WaterBlockID, &WaterBehavior{})
	block.Register(block.ButtonBlockID, &ButtonBehavior{})
}
