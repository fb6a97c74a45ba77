package mesh

import (
	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// builder накапливает вершины и индексы одного меша чанка
type builder struct {
	vertices []Vertex
	indices  []uint16
}

// addFace добавляет одну грань: четыре вершины и шесть индексов
func (b *builder) addFace(x, y, z int, face world.Face, id block.BlockID) {
	tile := id.AtlasTiles()[face]

	offset := uint16(len(b.vertices))
	for _, i := range quadIndexPattern {
		b.indices = append(b.indices, offset+i)
	}

	base := faceVertexBase[face]
	for _, v := range cubeVertices[base : base+4] {
		b.vertices = append(b.vertices, Vertex{
			Pos: [4]float32{
				v.pos[0] + float32(x),
				v.pos[1] + float32(y),
				v.pos[2] + float32(z),
				1,
			},
			TexCoord: [2]float32{
				(v.uv[0] + float32(tile[0])) / atlasUTiles,
				(v.uv[1] + float32(tile[1])) / atlasVTiles,
			},
			FaceIndex: uint32(face),
		})
	}
}

// Generate строит геометрию чанка по нему самому и шести соседям.
// Грань испускается, только если примыкающий к ней блок прозрачен.
// Граничные слои сканируются лишь тогда, когда бит прозрачности соседа
// с нужной стороны установлен: известный полностью непрозрачный сосед
// отменяет скан целого слоя 16x16.
func Generate(chunk *world.Chunk, neighbours *world.Neighbours) ([]Vertex, []uint16) {
	var b builder

	const s = world.ChunkSize
	const e = s - 1

	for x := 0; x < s; x++ {
		for y := 0; y < s; y++ {
			for z := 0; z < s; z++ {
				id := chunk.Blocks[x][y][z]
				if !id.Opaque() {
					continue
				}

				if x != e && chunk.Blocks[x+1][y][z].Transparent() {
					b.addFace(x, y, z, world.FacePosX, id)
				}
				if x != 0 && chunk.Blocks[x-1][y][z].Transparent() {
					b.addFace(x, y, z, world.FaceNegX, id)
				}
				if y != e && chunk.Blocks[x][y+1][z].Transparent() {
					b.addFace(x, y, z, world.FacePosY, id)
				}
				if y != 0 && chunk.Blocks[x][y-1][z].Transparent() {
					b.addFace(x, y, z, world.FaceNegY, id)
				}
				if z != e && chunk.Blocks[x][y][z+1].Transparent() {
					b.addFace(x, y, z, world.FacePosZ, id)
				}
				if z != 0 && chunk.Blocks[x][y][z-1].Transparent() {
					b.addFace(x, y, z, world.FaceNegZ, id)
				}
			}
		}
	}

	if neighbours.Transparent(world.FacePosX) {
		for y := 0; y < s; y++ {
			for z := 0; z < s; z++ {
				if id := chunk.Blocks[e][y][z]; id.Opaque() && neighbours.PosX.Blocks[0][y][z].Transparent() {
					b.addFace(e, y, z, world.FacePosX, id)
				}
			}
		}
	}
	if neighbours.Transparent(world.FaceNegX) {
		for y := 0; y < s; y++ {
			for z := 0; z < s; z++ {
				if id := chunk.Blocks[0][y][z]; id.Opaque() && neighbours.NegX.Blocks[e][y][z].Transparent() {
					b.addFace(0, y, z, world.FaceNegX, id)
				}
			}
		}
	}
	if neighbours.Transparent(world.FacePosY) {
		for x := 0; x < s; x++ {
			for z := 0; z < s; z++ {
				if id := chunk.Blocks[x][e][z]; id.Opaque() && neighbours.PosY.Blocks[x][0][z].Transparent() {
					b.addFace(x, e, z, world.FacePosY, id)
				}
			}
		}
	}
	if neighbours.Transparent(world.FaceNegY) {
		for x := 0; x < s; x++ {
			for z := 0; z < s; z++ {
				if id := chunk.Blocks[x][0][z]; id.Opaque() && neighbours.NegY.Blocks[x][e][z].Transparent() {
					b.addFace(x, 0, z, world.FaceNegY, id)
				}
			}
		}
	}
	if neighbours.Transparent(world.FacePosZ) {
		for x := 0; x < s; x++ {
			for y := 0; y < s; y++ {
				if id := chunk.Blocks[x][y][e]; id.Opaque() && neighbours.PosZ.Blocks[x][y][0].Transparent() {
					b.addFace(x, y, e, world.FacePosZ, id)
				}
			}
		}
	}
	if neighbours.Transparent(world.FaceNegZ) {
		for x := 0; x < s; x++ {
			for y := 0; y < s; y++ {
				if id := chunk.Blocks[x][y][0]; id.Opaque() && neighbours.NegZ.Blocks[x][y][e].Transparent() {
					b.addFace(x, y, 0, world.FaceNegZ, id)
				}
			}
		}
	}

	return b.vertices, b.indices
}
