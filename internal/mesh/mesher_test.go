package mesh

import (
	"testing"

	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/block"

	_ "github.com/annel0/voxel-sim/internal/world/block/implementations"
)

func airChunk() *world.Chunk {
	return &world.Chunk{Transparency: world.AllTransparent}
}

func solidChunk() *world.Chunk {
	var c world.Chunk
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				c.Blocks[x][y][z] = block.StoneBlockID
			}
		}
	}
	c.NonAirCount = world.MaxBlockCount
	c.ComputeTransparency()
	return &c
}

func neighboursOf(c *world.Chunk) *world.Neighbours {
	return &world.Neighbours{PosX: c, NegX: c, PosY: c, NegY: c, PosZ: c, NegZ: c}
}

// TestIsolatedBlockSixFaces: одиночный твердый блок в прозрачном
// окружении дает ровно 6 граней — 24 вершины и 36 индексов
func TestIsolatedBlockSixFaces(t *testing.T) {
	var c world.Chunk
	c.Blocks[8][8][8] = block.StoneBlockID
	c.NonAirCount = 1
	c.ComputeTransparency()

	vertices, indices := Generate(&c, neighboursOf(airChunk()))

	if len(vertices) != 24 {
		t.Fatalf("вершин %d, ожидалось 24", len(vertices))
	}
	if len(indices) != 36 {
		t.Fatalf("индексов %d, ожидалось 36", len(indices))
	}

	// Все шесть faceIndex встречаются по одному разу на грань
	var faces [6]int
	for _, v := range vertices {
		if v.FaceIndex > 5 {
			t.Fatalf("faceIndex %d вне диапазона", v.FaceIndex)
		}
		faces[v.FaceIndex]++
	}
	for face, count := range faces {
		if count != 4 {
			t.Errorf("грань %d: %d вершин, ожидалось 4", face, count)
		}
	}

	// Индексы ссылаются только на существующие вершины
	for _, i := range indices {
		if int(i) >= len(vertices) {
			t.Fatalf("индекс %d вне диапазона вершин", i)
		}
	}

	// Позиции вершин лежат на кубе блока (8,8,8)
	for _, v := range vertices {
		for axis, value := range map[string]float32{"X": v.Pos[0], "Y": v.Pos[1], "Z": v.Pos[2]} {
			if value != 8 && value != 9 {
				t.Fatalf("ось %s: координата вершины %v вне куба блока", axis, value)
			}
		}
		if v.Pos[3] != 1 {
			t.Fatalf("W-компонента %v, ожидалась 1", v.Pos[3])
		}
	}
}

// TestEnclosedChunkNoFaces: сплошной чанк в сплошном непрозрачном
// окружении не дает ни одной грани и не сканирует граничные слои
func TestEnclosedChunkNoFaces(t *testing.T) {
	c := solidChunk()
	vertices, indices := Generate(c, neighboursOf(solidChunk()))

	if len(vertices) != 0 || len(indices) != 0 {
		t.Fatalf("закрытый чанк дал %d вершин и %d индексов", len(vertices), len(indices))
	}
}

// TestBoundaryLayerAgainstAir: сплошной чанк с воздушным соседом только
// по +X дает ровно один слой 16x16 граней
func TestBoundaryLayerAgainstAir(t *testing.T) {
	c := solidChunk()
	neighbours := neighboursOf(solidChunk())
	neighbours.PosX = airChunk()

	vertices, indices := Generate(c, neighbours)

	const faces = world.ChunkSize * world.ChunkSize
	if len(vertices) != faces*4 {
		t.Fatalf("вершин %d, ожидалось %d", len(vertices), faces*4)
	}
	if len(indices) != faces*6 {
		t.Fatalf("индексов %d, ожидалось %d", len(indices), faces*6)
	}
	for _, v := range vertices {
		if v.FaceIndex != uint32(world.FacePosX) {
			t.Fatalf("faceIndex %d, ожидалась грань +X", v.FaceIndex)
		}
	}
}

// TestWaterIsNotMeshed: прозрачные блоки не порождают граней, но
// открывают грани соседних твердых блоков
func TestWaterIsNotMeshed(t *testing.T) {
	var c world.Chunk
	c.Blocks[8][8][8] = block.WaterBlockID
	c.Blocks[9][8][8] = block.StoneBlockID
	c.NonAirCount = 2
	c.ComputeTransparency()

	vertices, _ := Generate(&c, neighboursOf(airChunk()))

	// Только камень дает грани: 6 граней (вода прозрачна)
	if len(vertices) != 24 {
		t.Fatalf("вершин %d, ожидалось 24 (только камень)", len(vertices))
	}
}

// TestAtlasUV: текстурные координаты лежат в [0, 1]
func TestAtlasUV(t *testing.T) {
	var c world.Chunk
	c.Blocks[0][0][0] = block.DirtBlockID
	c.NonAirCount = 1
	c.ComputeTransparency()

	vertices, _ := Generate(&c, neighboursOf(airChunk()))
	for _, v := range vertices {
		for _, uv := range v.TexCoord {
			if uv < 0 || uv > 1 {
				t.Fatalf("UV %v вне [0, 1]", v.TexCoord)
			}
		}
	}
}
