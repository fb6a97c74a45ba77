package world

import (
	"testing"

	"github.com/annel0/voxel-sim/internal/world/block"

	_ "github.com/annel0/voxel-sim/internal/world/block/implementations"
)

// fillChunk заполняет чанк одним блоком и обновляет NonAirCount
func fillChunk(c *Chunk, id block.BlockID) {
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				c.Blocks[x][y][z] = id
			}
		}
	}
	if id == block.AirBlockID {
		c.NonAirCount = 0
	} else {
		c.NonAirCount = MaxBlockCount
	}
}

// bruteForceTransparency сканирует все шесть граничных слоев целиком
func bruteForceTransparency(c *Chunk) uint8 {
	const last = ChunkSize - 1
	mask := uint8(1 << 6)
	for a := 0; a < ChunkSize; a++ {
		for b := 0; b < ChunkSize; b++ {
			if c.Blocks[last][a][b].Transparent() {
				mask |= 1 << FacePosX
			}
			if c.Blocks[0][a][b].Transparent() {
				mask |= 1 << FaceNegX
			}
			if c.Blocks[a][last][b].Transparent() {
				mask |= 1 << FacePosY
			}
			if c.Blocks[a][0][b].Transparent() {
				mask |= 1 << FaceNegY
			}
			if c.Blocks[a][b][last].Transparent() {
				mask |= 1 << FacePosZ
			}
			if c.Blocks[a][b][0].Transparent() {
				mask |= 1 << FaceNegZ
			}
		}
	}
	return mask
}

// TestComputeTransparencyEmpty проверяет короткий путь пустого чанка
func TestComputeTransparencyEmpty(t *testing.T) {
	var c Chunk
	c.ComputeTransparency()

	if c.Transparency != AllTransparent {
		t.Fatalf("пустой чанк: маска %08b, ожидалась %08b", c.Transparency, AllTransparent)
	}
	if c.Transparency != bruteForceTransparency(&c) {
		t.Fatal("короткий путь пустого чанка расходится с полным сканом")
	}
}

// TestComputeTransparencyFull проверяет сплошной непрозрачный чанк
func TestComputeTransparencyFull(t *testing.T) {
	var c Chunk
	fillChunk(&c, block.StoneBlockID)
	c.ComputeTransparency()

	if !c.TransparencyComputed() {
		t.Fatal("маска не помечена вычисленной")
	}
	for face := FacePosX; face <= FaceNegZ; face++ {
		if c.GetTransparency(face) {
			t.Errorf("заполненный чанк: грань %d прозрачна", face)
		}
	}
	if c.Transparency != bruteForceTransparency(&c) {
		t.Fatal("маска заполненного чанка расходится с полным сканом")
	}
}

// TestComputeTransparencyBoundary проверяет по одному прозрачному блоку
// на граничном слое каждой грани
func TestComputeTransparencyBoundary(t *testing.T) {
	const last = ChunkSize - 1
	holes := []struct {
		x, y, z int
		face    Face
	}{
		{last, 3, 7, FacePosX},
		{0, 12, 1, FaceNegX},
		{5, last, 9, FacePosY},
		{14, 0, 2, FaceNegY},
		{6, 6, last, FacePosZ},
		{9, 4, 0, FaceNegZ},
	}

	for _, h := range holes {
		var c Chunk
		fillChunk(&c, block.DirtBlockID)
		c.Blocks[h.x][h.y][h.z] = block.AirBlockID
		c.NonAirCount--
		c.ComputeTransparency()

		if c.Transparency != bruteForceTransparency(&c) {
			t.Fatalf("грань %d: маска %08b расходится с полным сканом %08b",
				h.face, c.Transparency, bruteForceTransparency(&c))
		}
		if !c.GetTransparency(h.face) {
			t.Errorf("грань %d не помечена прозрачной", h.face)
		}
		if got := c.Transparency &^ (1<<h.face | 1<<6); got != 0 {
			t.Errorf("грань %d: лишние биты в маске %08b", h.face, c.Transparency)
		}
	}
}

// TestComputeTransparencyInterior проверяет, что дыра в интерьере не
// открывает ни одной грани
func TestComputeTransparencyInterior(t *testing.T) {
	var c Chunk
	fillChunk(&c, block.StoneBlockID)
	c.Blocks[8][8][8] = block.AirBlockID
	c.NonAirCount--
	c.ComputeTransparency()

	for face := FacePosX; face <= FaceNegZ; face++ {
		if c.GetTransparency(face) {
			t.Errorf("дыра в интерьере открыла грань %d", face)
		}
	}
	if c.Transparency != bruteForceTransparency(&c) {
		t.Fatal("маска расходится с полным сканом")
	}
}

// TestComputeTransparencyWater проверяет, что вода прозрачна для маски
func TestComputeTransparencyWater(t *testing.T) {
	var c Chunk
	fillChunk(&c, block.StoneBlockID)
	c.Blocks[0][5][5] = block.WaterBlockID
	c.ComputeTransparency()

	if !c.GetTransparency(FaceNegX) {
		t.Fatal("вода на границе не открыла грань -X")
	}
}

// TestFaceOpposite проверяет пары противоположных граней
func TestFaceOpposite(t *testing.T) {
	pairs := map[Face]Face{
		FacePosX: FaceNegX,
		FacePosY: FaceNegY,
		FacePosZ: FaceNegZ,
	}
	for a, b := range pairs {
		if a.Opposite() != b || b.Opposite() != a {
			t.Errorf("грани %d и %d не противоположны", a, b)
		}
	}
}
