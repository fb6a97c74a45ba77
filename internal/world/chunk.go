package world

import (
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// MaxBlockCount — количество блоков в полностью заполненном чанке
const MaxBlockCount = ChunkSize * ChunkSize * ChunkSize

// Face нумерует грани чанка в порядке +X, -X, +Y, -Y, +Z, -Z.
// Тот же порядок используется как faceIndex вершин меша.
type Face uint8

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Opposite возвращает противоположную грань
func (f Face) Opposite() Face {
	return f ^ 1
}

// transparencyComputed — служебный бит маски: отличает «маска ещё не
// вычислена» от «все грани непрозрачны» (обе дают нулевые биты граней)
const transparencyComputed uint8 = 1 << 6

// AllTransparent — маска полностью прозрачного чанка
const AllTransparent uint8 = 0b0011_1111 | transparencyComputed

// Chunk — куб 16x16x16 блоков, единица хранения, генерации и мешинга
type Chunk struct {
	// Blocks[x][y][z]; индексированный доступ за O(1)
	Blocks [ChunkSize][ChunkSize][ChunkSize]block.BlockID

	// NonAirCount поддерживается инкрементально при каждой записи блока.
	// Позволяет отличать полностью пустые и полностью заполненные чанки
	// без сканирования.
	NonAirCount uint16

	// Transparency — битовая маска: бит i установлен, когда на граничном
	// слое грани i есть хотя бы один прозрачный блок
	Transparency uint8

	// InMeshQueue предотвращает повторную постановку в очередь ремеша
	InMeshQueue bool
}

// Get возвращает блок по локальным координатам
func (c *Chunk) Get(local vec.Vec3) block.BlockID {
	return c.Blocks[local.X][local.Y][local.Z]
}

// GetTransparency возвращает true, если на указанной грани есть хотя бы
// один прозрачный блок. Для невычисленной маски все биты граней нулевые,
// то есть грань считается непрозрачной.
func (c *Chunk) GetTransparency(face Face) bool {
	return c.Transparency&(1<<face) != 0
}

// TransparencyComputed возвращает true, если маска уже вычислялась
func (c *Chunk) TransparencyComputed() bool {
	return c.Transparency&transparencyComputed != 0
}

// ComputeTransparency пересчитывает маску прозрачности граней.
// Вызывается после любой записи в граничный слой; записи только во
// внутренние блоки маску не меняют. Худший случай — шесть сканов 16x16,
// интерьер чанка не читается вовсе.
func (c *Chunk) ComputeTransparency() {
	// Заполненность не дает короткого пути: полный чанк может содержать
	// воду на границе, а вода прозрачна
	if c.NonAirCount == 0 {
		c.Transparency = AllTransparent
		return
	}

	mask := transparencyComputed
	const last = ChunkSize - 1
	for a := 0; a < ChunkSize; a++ {
		for b := 0; b < ChunkSize; b++ {
			if mask&(1<<FacePosX) == 0 && c.Blocks[last][a][b].Transparent() {
				mask |= 1 << FacePosX
			}
			if mask&(1<<FaceNegX) == 0 && c.Blocks[0][a][b].Transparent() {
				mask |= 1 << FaceNegX
			}
			if mask&(1<<FacePosY) == 0 && c.Blocks[a][last][b].Transparent() {
				mask |= 1 << FacePosY
			}
			if mask&(1<<FaceNegY) == 0 && c.Blocks[a][0][b].Transparent() {
				mask |= 1 << FaceNegY
			}
			if mask&(1<<FacePosZ) == 0 && c.Blocks[a][b][last].Transparent() {
				mask |= 1 << FacePosZ
			}
			if mask&(1<<FaceNegZ) == 0 && c.Blocks[a][b][0].Transparent() {
				mask |= 1 << FaceNegZ
			}
		}
	}
	c.Transparency = mask
}
