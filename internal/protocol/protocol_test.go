package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-sim/internal/mesh"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/block"

	_ "github.com/annel0/voxel-sim/internal/world/block/implementations"
)

func TestTagOf(t *testing.T) {
	_, err := TagOf(nil)
	require.Error(t, err, "пустое сообщение должно отвергаться")

	_, err = TagOf([]byte{200})
	require.Error(t, err, "неизвестный тег должен отвергаться")

	msg := InitSimulation{Seed: 7}.Encode()
	tag, err := TagOf(msg)
	require.NoError(t, err)
	assert.Equal(t, TagInitSimulation, tag)
	assert.Len(t, Payload(msg), 8)
}

func TestReaderOverflow(t *testing.T) {
	r := NewReader([]byte{1, 2})

	assert.EqualValues(t, 0x0201, r.U16())
	assert.NoError(t, r.Err())

	// Чтение за концом буфера фиксирует ошибку, дальнейшие чтения
	// возвращают нули
	assert.Zero(t, r.U32())
	require.Error(t, r.Err())
	assert.Zero(t, r.U8())
}

func TestInitMessagesRoundTrip(t *testing.T) {
	sim, err := DecodeInitSimulation(Payload(InitSimulation{Seed: 42}.Encode()))
	require.NoError(t, err)
	assert.EqualValues(t, 42, sim.Seed)

	gen, err := DecodeInitGenerator(Payload(InitGenerator{
		Seed:          99,
		HighestChunkY: 7,
		LowestChunkY:  -8,
	}.Encode()))
	require.NoError(t, err)
	assert.EqualValues(t, 99, gen.Seed)
	assert.EqualValues(t, 7, gen.HighestChunkY)
	assert.EqualValues(t, -8, gen.LowestChunkY)

	// Лишние байты в конце — нарушение протокола
	_, err = DecodeInitSimulation(make([]byte, 9))
	require.Error(t, err)
}

func TestPlayerCommandRoundTrip(t *testing.T) {
	in := PlayerCommand{
		PlayerChunk: vec.Vec3{X: -3, Y: 0, Z: 12},
		Position:    vec.Vec3Float{X: 1.5, Y: 8, Z: -0.25},
		Direction:   vec.Vec3Float{X: 0, Y: -1, Z: 0},
		Diameter:    -5,
	}

	out, err := DecodePlayerCommand(Payload(in.Encode()))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMovementMessagesRoundTrip(t *testing.T) {
	cmd, err := DecodeMovementCommand(Payload(MovementCommand{
		Delta: vec.Vec3Float{X: 0.5, Y: 0, Z: -2},
	}.Encode()))
	require.NoError(t, err)
	assert.Equal(t, vec.Vec3Float{X: 0.5, Y: 0, Z: -2}, cmd.Delta)

	reply, err := DecodeMovementCommandReply(Payload(MovementCommandReply{
		Chunk:    vec.Vec3{X: 1, Y: -1, Z: 0},
		Position: vec.Vec3Float{X: 15.5, Y: 0.5, Z: 3},
	}.Encode()))
	require.NoError(t, err)
	assert.Equal(t, vec.Vec3{X: 1, Y: -1, Z: 0}, reply.Chunk)
}

func TestChunkRemovalRoundTrip(t *testing.T) {
	positions := []vec.Vec3{{X: 1, Y: 2, Z: 3}, {X: -100, Y: 0, Z: 100}}

	out, err := DecodeChunkRemoval(Payload(EncodeChunkRemoval(positions)))
	require.NoError(t, err)
	assert.Equal(t, positions, out)

	empty, err := DecodeChunkRemoval(Payload(EncodeChunkRemoval(nil)))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestChunkInfoRoundTrip(t *testing.T) {
	records := []ChunkInfoRecord{
		{Elapsed: 1500 * time.Millisecond, NonAirCount: 4096},
		{Elapsed: 42 * time.Microsecond, NonAirCount: 0},
	}

	out, err := DecodeChunkInfo(Payload(EncodeChunkInfo(records)))
	require.NoError(t, err)
	assert.Equal(t, records, out)
}

func TestColumnReplyRoundTrip(t *testing.T) {
	var solid world.Chunk
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				solid.Blocks[x][y][z] = block.StoneBlockID
			}
		}
	}
	solid.NonAirCount = world.MaxBlockCount
	solid.ComputeTransparency()

	// Колонка из трех уровней: чанк, воздух, чанк
	w := NewColumnReplyWriter(-2, 7, 3)
	w.WriteChunk(&solid)
	w.WriteNone()
	w.WriteChunk(&solid)
	msg := w.Finish()

	tag, err := TagOf(msg)
	require.NoError(t, err)
	require.Equal(t, TagGenerateColumnReply, tag)

	r, err := NewColumnReplyReader(Payload(msg))
	require.NoError(t, err)
	assert.EqualValues(t, -2, r.X)
	assert.EqualValues(t, 7, r.Z)

	var chunk world.Chunk
	present, err := r.Next(&chunk)
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, solid.Blocks, chunk.Blocks)
	assert.Equal(t, solid.NonAirCount, chunk.NonAirCount)
	assert.Equal(t, solid.Transparency, chunk.Transparency)

	present, err = r.Next(&chunk)
	require.NoError(t, err)
	assert.False(t, present)

	present, err = r.Next(&chunk)
	require.NoError(t, err)
	require.True(t, present)

	require.NoError(t, r.Drained())

	// Четвертая запись — чтение за концом
	_, err = r.Next(&chunk)
	require.Error(t, err)
}

func TestColumnReplyRejectsUnknownBlock(t *testing.T) {
	w := NewColumnReplyWriter(0, 0, 1)
	w.w.U8(1)   // флаг «есть»
	w.w.U8(0)   // прозрачность
	w.w.U16(1)  // заполненность
	blocks := make([]byte, world.MaxBlockCount)
	blocks[0] = 250 // незарегистрированный ID
	w.w.Bytes(blocks)

	r, err := NewColumnReplyReader(Payload(w.Finish()))
	require.NoError(t, err)

	var chunk world.Chunk
	_, err = r.Next(&chunk)
	require.Error(t, err)
}

func TestMeshDataRoundTrip(t *testing.T) {
	w := NewMeshDataWriter()
	assert.True(t, w.Empty())

	w.WriteEmpty(vec.Vec3{X: 1, Y: 2, Z: 3}, false)
	w.WriteEmpty(vec.Vec3{X: 4, Y: 5, Z: 6}, true)
	assert.False(t, w.Empty())

	entries, err := DecodeMeshData(Payload(w.Finish()))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].FullInvisible)
	assert.True(t, entries[1].FullInvisible)
	assert.Empty(t, entries[0].Vertices)
}

func TestMeshDataGeometryWithOddIndexCount(t *testing.T) {
	vertices := []mesh.Vertex{
		{Pos: [4]float32{0, 0, 0, 1}, TexCoord: [2]float32{0, 0.25}, FaceIndex: 2},
		{Pos: [4]float32{1, 0, 0, 1}, TexCoord: [2]float32{0.25, 0.25}, FaceIndex: 2},
		{Pos: [4]float32{1, 1, 0, 1}, TexCoord: [2]float32{0.25, 0}, FaceIndex: 2},
	}
	indices := []uint16{0, 1, 2} // нечетное число — пишется выравнивание

	w := NewMeshDataWriter()
	w.WriteMesh(vec.Vec3{X: -1, Y: 0, Z: 2}, vertices, indices)
	w.WriteEmpty(vec.Vec3{X: 0, Y: 0, Z: 0}, false)
	msg := w.Finish()

	// Записи: заголовок + вершины + индексы + 2 байта выравнивания,
	// затем пустая запись и байт тега
	wantLen := (24 + 3*mesh.VertexSize + 3*2 + 2) + 24 + 1
	assert.Len(t, msg, wantLen)

	entries, err := DecodeMeshData(Payload(msg))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, vertices, entries[0].Vertices)
	assert.Equal(t, indices, entries[0].Indices)
	assert.Equal(t, vec.Vec3{X: -1, Y: 0, Z: 2}, entries[0].Chunk)
}
