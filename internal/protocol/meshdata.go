package protocol

import (
	"fmt"

	"github.com/annel0/voxel-sim/internal/mesh"
	"github.com/annel0/voxel-sim/internal/vec"
)

// Раскладка MeshData: последовательность записей, каждая — заголовок
// (координаты чанка, число вершин, число индексов, флаг «заполнен и
// невидим»), затем вершины и индексы. При нечетном числе индексов
// дописываются два байта выравнивания.
const meshHeaderSize = 12 + 4 + 4 + 4

// MeshEntry — одна запись сообщения MeshData
type MeshEntry struct {
	Chunk         vec.Vec3
	FullInvisible bool
	Vertices      []mesh.Vertex
	Indices       []uint16
}

// MeshDataWriter собирает пакет обновлений мешей за один дренаж очереди
type MeshDataWriter struct {
	w       *Writer
	entries int
}

// NewMeshDataWriter создает писатель пакета обновлений
func NewMeshDataWriter() *MeshDataWriter {
	return &MeshDataWriter{w: NewWriter(meshHeaderSize)}
}

// Empty возвращает true, если не записано ни одной записи
func (mw *MeshDataWriter) Empty() bool {
	return mw.entries == 0
}

// WriteEmpty записывает чанк без геометрии: либо пустой, либо
// заполненный и невидимый
func (mw *MeshDataWriter) WriteEmpty(chunk vec.Vec3, fullInvisible bool) {
	mw.writeHeader(chunk, 0, 0, fullInvisible)
}

// WriteMesh записывает чанк с настоящей геометрией
func (mw *MeshDataWriter) WriteMesh(chunk vec.Vec3, vertices []mesh.Vertex, indices []uint16) {
	mw.writeHeader(chunk, uint32(len(vertices)), uint32(len(indices)), false)
	for _, v := range vertices {
		mw.w.F32(v.Pos[0])
		mw.w.F32(v.Pos[1])
		mw.w.F32(v.Pos[2])
		mw.w.F32(v.Pos[3])
		mw.w.F32(v.TexCoord[0])
		mw.w.F32(v.TexCoord[1])
		mw.w.U32(v.FaceIndex)
	}
	for _, i := range indices {
		mw.w.U16(i)
	}
	if len(indices)%2 != 0 {
		mw.w.U16(0) // выравнивание
	}
}

func (mw *MeshDataWriter) writeHeader(chunk vec.Vec3, vertexCount, indexCount uint32, fullInvisible bool) {
	mw.entries++
	writeVec3(mw.w, chunk)
	mw.w.U32(vertexCount)
	mw.w.U32(indexCount)
	if fullInvisible {
		mw.w.U32(1)
	} else {
		mw.w.U32(0)
	}
}

// Finish возвращает готовое сообщение
func (mw *MeshDataWriter) Finish() []byte {
	return mw.w.Finish(TagMeshData)
}

// DecodeMeshData разбирает все записи сообщения MeshData
func DecodeMeshData(payload []byte) ([]MeshEntry, error) {
	r := NewReader(payload)
	var entries []MeshEntry

	for r.Remaining() > 0 {
		chunk := readVec3(r)
		vertexCount := r.U32()
		indexCount := r.U32()
		fullInvisible := r.U32()
		if r.Err() != nil {
			return nil, fmt.Errorf("MeshData: %w", r.Err())
		}

		entry := MeshEntry{Chunk: chunk, FullInvisible: fullInvisible != 0}
		if vertexCount > 0 {
			entry.Vertices = make([]mesh.Vertex, vertexCount)
			for i := range entry.Vertices {
				v := &entry.Vertices[i]
				v.Pos = [4]float32{r.F32(), r.F32(), r.F32(), r.F32()}
				v.TexCoord = [2]float32{r.F32(), r.F32()}
				v.FaceIndex = r.U32()
			}
		}
		if indexCount > 0 {
			entry.Indices = make([]uint16, indexCount)
			for i := range entry.Indices {
				entry.Indices[i] = r.U16()
			}
			if indexCount%2 != 0 {
				r.Skip(2) // выравнивание
			}
		}
		if r.Err() != nil {
			return nil, fmt.Errorf("MeshData: %w", r.Err())
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
