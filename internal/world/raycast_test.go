package world

import (
	"testing"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// TestRayMarchScenario: мир с единственным твердым блоком в (5,5,5);
// луч из (0, 5.5, 5.5) вдоль +X должен дать первый непрозрачный (5,5,5)
// и последний прозрачный (4,5,5)
func TestRayMarchScenario(t *testing.T) {
	w := NewWorld(4, 4)

	var chunk Chunk
	chunk.Blocks[5][5][5] = block.StoneBlockID
	chunk.NonAirCount = 1
	chunk.ComputeTransparency()
	w.AddChunk(chunkAt(0, 0, 0), chunk)

	hit := w.FindNearestBlockOnRay(
		chunkAt(0, 0, 0),
		vec.Vec3Float{X: 0, Y: 5.5, Z: 5.5},
		vec.Vec3Float{X: 1, Y: 0, Z: 0},
		6,
	)

	if !hit.Hit {
		t.Fatal("луч не попал в блок")
	}
	if hit.Block != blockAt(5, 5, 5) {
		t.Fatalf("первый непрозрачный %v, ожидался (5,5,5)", hit.Block.Vec3)
	}
	if !hit.HasLastTransparent || hit.LastTransparent != blockAt(4, 5, 5) {
		t.Fatalf("последний прозрачный %v, ожидался (4,5,5)", hit.LastTransparent.Vec3)
	}
}

// TestRayMarchDegenerate: нулевое направление и нулевая дистанция дают
// «нет попадания», а не зависание
func TestRayMarchDegenerate(t *testing.T) {
	w := NewWorld(4, 4)

	var chunk Chunk
	fillChunk(&chunk, block.StoneBlockID)
	chunk.ComputeTransparency()
	w.AddChunk(chunkAt(0, 0, 0), chunk)

	if hit := w.FindNearestBlockOnRay(chunkAt(0, 0, 0), vec.Vec3Float{X: -1, Y: 5, Z: 5}, vec.Vec3Float{}, 10); hit.Hit {
		t.Fatal("нулевое направление дало попадание")
	}
	if hit := w.FindNearestBlockOnRay(chunkAt(0, 0, 0), vec.Vec3Float{X: -1, Y: 5, Z: 5}, vec.Vec3Float{X: 1}, 0); hit.Hit {
		t.Fatal("нулевая дистанция дала попадание")
	}
}

// TestRayMarchMaxDistance: блок дальше maxDistance не обнаруживается
func TestRayMarchMaxDistance(t *testing.T) {
	w := NewWorld(4, 4)

	var chunk Chunk
	chunk.Blocks[10][5][5] = block.StoneBlockID
	chunk.NonAirCount = 1
	chunk.ComputeTransparency()
	w.AddChunk(chunkAt(0, 0, 0), chunk)

	origin := vec.Vec3Float{X: 0, Y: 5.5, Z: 5.5}
	direction := vec.Vec3Float{X: 1}

	if hit := w.FindNearestBlockOnRay(chunkAt(0, 0, 0), origin, direction, 5); hit.Hit {
		t.Fatal("луч достал блок за пределами maxDistance")
	}
	if hit := w.FindNearestBlockOnRay(chunkAt(0, 0, 0), origin, direction, 20); !hit.Hit {
		t.Fatal("луч не достал блок в пределах maxDistance")
	}
}

// TestRayMarchThroughAbsentChunks: нерезидентные чанки прозрачны для луча
func TestRayMarchThroughAbsentChunks(t *testing.T) {
	w := NewWorld(4, 4)

	var chunk Chunk
	chunk.Blocks[0][5][5] = block.StoneBlockID
	chunk.NonAirCount = 1
	chunk.ComputeTransparency()
	// Блок в чанке (2,0,0); чанки (0..1,0,0) отсутствуют
	w.AddChunk(chunkAt(2, 0, 0), chunk)

	hit := w.FindNearestBlockOnRay(
		chunkAt(0, 0, 0),
		vec.Vec3Float{X: 0, Y: 5.5, Z: 5.5},
		vec.Vec3Float{X: 1},
		40,
	)
	if !hit.Hit || hit.Block != blockAt(32, 5, 5) {
		t.Fatalf("луч сквозь незагруженное пространство: %+v", hit)
	}
}
