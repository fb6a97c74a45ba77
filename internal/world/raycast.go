package world

import (
	"github.com/annel0/voxel-sim/internal/vec"
)

// raySubSteps — число шагов марша на один блок дистанции
const raySubSteps = 100

// RayHit — результат марша луча: последний прозрачный блок перед
// попаданием и первый непрозрачный. Ломать нужно Block, ставить —
// в LastTransparent.
type RayHit struct {
	LastTransparent    BlockPosition
	HasLastTransparent bool
	Block              BlockPosition
	Hit                bool
}

// FindNearestBlockOnRay марширует вдоль луча фиксированным шагом и
// возвращает пару блоков по обе стороны первой непрозрачной границы.
// Вырожденное направление (нулевой вектор) и луч, исчерпавший
// maxDistance, дают «нет попадания», а не ошибку. Нерезидентные чанки
// для луча прозрачны: сквозь незагруженное пространство он пролетает.
func (w *World) FindNearestBlockOnRay(startChunk ChunkPosition, offset, direction vec.Vec3Float, maxDistance int) RayHit {
	if direction.IsZero() || maxDistance <= 0 {
		return RayHit{}
	}
	direction = direction.Normalized()

	start := startChunk.Block()

	var previous BlockPosition
	hasPrevious := false

	for i := 0; i < maxDistance*raySubSteps; i++ {
		distance := offset.Add(direction.Mul(float32(i) / raySubSteps))
		position := start.Plus(distance.Floor())
		if hasPrevious && position == previous {
			continue
		}

		if chunk := w.GetChunk(position.Chunk()); chunk != nil {
			if !chunk.Get(position.Local()).Transparent() {
				return RayHit{
					LastTransparent:    previous,
					HasLastTransparent: hasPrevious,
					Block:              position,
					Hit:                true,
				}
			}
		}

		previous = position
		hasPrevious = true
	}

	return RayHit{}
}
