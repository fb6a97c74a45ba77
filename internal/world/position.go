package world

import (
	"github.com/annel0/voxel-sim/internal/vec"
)

// ChunkSize — сторона куба чанка в блоках
const ChunkSize = 16

// ChunkPosition представляет координаты чанка в мире
type ChunkPosition struct {
	vec.Vec3
}

// BlockPosition представляет абсолютные координаты блока в мире
type BlockPosition struct {
	vec.Vec3
}

// ChunkPositionFromIndex создает позицию чанка из индексного вектора
func ChunkPositionFromIndex(index vec.Vec3) ChunkPosition {
	return ChunkPosition{Vec3: index}
}

// BlockPositionFromIndex создает позицию блока из индексного вектора
func BlockPositionFromIndex(index vec.Vec3) BlockPosition {
	return BlockPosition{Vec3: index}
}

// floorDiv делит с округлением к минус бесконечности.
// Обычное деление в Go усекает к нулю, что ломает отрицательные
// координаты: -1/16 == 0, а нужен чанк -1.
func floorDiv(lhs, rhs int) int {
	d := lhs / rhs
	r := lhs % rhs
	if (r > 0 && rhs < 0) || (r < 0 && rhs > 0) {
		return d - 1
	}
	return d
}

// Block возвращает позицию углового блока чанка (минимального по всем осям)
func (p ChunkPosition) Block() BlockPosition {
	return BlockPosition{Vec3: p.Vec3.Mul(ChunkSize)}
}

// Plus возвращает позицию чанка, смещенную на direction чанков
func (p ChunkPosition) Plus(direction vec.Vec3) ChunkPosition {
	return ChunkPosition{Vec3: p.Vec3.Add(direction)}
}

// Normalize приводит локальное смещение относительно чанка обратно в
// диапазон [0, ChunkSize). Смещение могло уйти за границы из-за
// непрерывного движения: чанк сдвигается, а остаток остается малым —
// так координаты игрока не теряют точность вдали от начала мира.
func (p ChunkPosition) Normalize(relative vec.Vec3Float) (ChunkPosition, vec.Vec3Float) {
	chunkOffset := BlockPositionFromIndex(relative.Floor()).Chunk().Vec3
	if chunkOffset.IsZero() {
		return p, relative
	}
	return p.Plus(chunkOffset), relative.Sub(vec.FromVec3(chunkOffset.Mul(ChunkSize)))
}

// Chunk возвращает чанк, содержащий блок
func (p BlockPosition) Chunk() ChunkPosition {
	return ChunkPosition{Vec3: vec.Vec3{
		X: floorDiv(p.X, ChunkSize),
		Y: floorDiv(p.Y, ChunkSize),
		Z: floorDiv(p.Z, ChunkSize),
	}}
}

// Local возвращает координаты блока внутри его чанка, каждая в [0, ChunkSize)
func (p BlockPosition) Local() vec.Vec3 {
	return p.Vec3.Sub(p.Chunk().Block().Vec3)
}

// Plus возвращает позицию блока, смещенную на direction блоков
func (p BlockPosition) Plus(direction vec.Vec3) BlockPosition {
	return BlockPosition{Vec3: p.Vec3.Add(direction)}
}
