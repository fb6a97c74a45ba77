package protocol

import (
	"fmt"

	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// Раскладка GenerateColumnReply: X, Z, затем по одной записи на каждый
// уровень Y от верхнего чанка к нижнему. Запись — либо байт «нет» плюс
// байт выравнивания, либо полный чанк: байт «есть», байт маски
// прозрачности, счетчик ненулевых блоков и 4096 байт блоков.
const (
	columnNoneRecordSize  = 2
	columnChunkRecordSize = 1 + 1 + 2 + world.MaxBlockCount
)

// ColumnReplyWriter последовательно собирает ответ генератора
type ColumnReplyWriter struct {
	w *Writer
}

// NewColumnReplyWriter создает писатель ответа для колонки (x, z) из
// count чанков
func NewColumnReplyWriter(x, z int32, count int) *ColumnReplyWriter {
	w := NewWriter(8 + count*columnChunkRecordSize)
	w.I32(x)
	w.I32(z)
	return &ColumnReplyWriter{w: w}
}

// WriteNone записывает отсутствующий (полностью воздушный) чанк
func (cw *ColumnReplyWriter) WriteNone() {
	cw.w.U8(0)
	cw.w.U8(0) // выравнивание
}

// WriteChunk записывает полный чанк
func (cw *ColumnReplyWriter) WriteChunk(chunk *world.Chunk) {
	cw.w.U8(1)
	cw.w.U8(chunk.Transparency)
	cw.w.U16(chunk.NonAirCount)
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				cw.w.U8(uint8(chunk.Blocks[x][y][z]))
			}
		}
	}
}

// Finish возвращает готовое сообщение
func (cw *ColumnReplyWriter) Finish() []byte {
	return cw.w.Finish(TagGenerateColumnReply)
}

// ColumnReplyReader потребляет записи ответа в том же порядке
// (от верхнего Y к нижнему)
type ColumnReplyReader struct {
	r *Reader
	X int32
	Z int32
}

// NewColumnReplyReader разбирает заголовок ответа
func NewColumnReplyReader(payload []byte) (*ColumnReplyReader, error) {
	r := NewReader(payload)
	cr := &ColumnReplyReader{r: r, X: r.I32(), Z: r.I32()}
	if r.Err() != nil {
		return nil, fmt.Errorf("GenerateColumnReply: %w", r.Err())
	}
	return cr, nil
}

// Next читает следующую запись колонки. Для присутствующего чанка
// заполняет dst и возвращает true; для воздушного — false. dst не
// трогается для воздушной записи.
func (cr *ColumnReplyReader) Next(dst *world.Chunk) (bool, error) {
	present := cr.r.U8()
	if present == 0 {
		cr.r.Skip(1) // выравнивание
		if err := cr.r.Err(); err != nil {
			return false, fmt.Errorf("GenerateColumnReply: %w", err)
		}
		return false, nil
	}

	dst.Transparency = cr.r.U8()
	dst.NonAirCount = cr.r.U16()
	dst.InMeshQueue = false
	blocks := cr.r.Bytes(world.MaxBlockCount)
	if err := cr.r.Err(); err != nil {
		return false, fmt.Errorf("GenerateColumnReply: %w", err)
	}

	i := 0
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				id := block.BlockID(blocks[i])
				if !block.IsValidBlockID(id) {
					return false, fmt.Errorf("GenerateColumnReply: недопустимый блок %d", blocks[i])
				}
				dst.Blocks[x][y][z] = id
				i++
			}
		}
	}
	return true, nil
}

// Drained возвращает ошибку, если после всех записей в буфере остались
// байты
func (cr *ColumnReplyReader) Drained() error {
	return expectDrained(cr.r, "GenerateColumnReply")
}
