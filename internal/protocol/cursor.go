package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader — курсор по байтовому буферу. Продвигает позицию при каждом
// чтении и отклоняет чтение за концом буфера; после первой ошибки все
// последующие чтения возвращают нули. Используется единообразно для
// всех тегированных раскладок.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader создает курсор над полезной нагрузкой сообщения
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err возвращает первую ошибку чтения
func (r *Reader) Err() error {
	return r.err
}

// Remaining возвращает количество непрочитанных байтов
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// take выдает n следующих байтов или фиксирует ошибку выхода за конец
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.Remaining() < n {
		r.err = fmt.Errorf("чтение %d байт за концом буфера (осталось %d)", n, r.Remaining())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// U8 читает один байт
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 читает uint16
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 читает uint32
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 читает uint64
func (r *Reader) U64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// I32 читает int32
func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// F32 читает float32
func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// Bytes читает n байт без копирования
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

// Skip пропускает n байт
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Writer накапливает байты сообщения. Finish дописывает тег и отдает
// готовый буфер.
type Writer struct {
	buf []byte
}

// NewWriter создает писатель с заранее выделенной емкостью
// (плюс байт тега)
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity+1)}
}

// U8 дописывает один байт
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// U16 дописывает uint16
func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// U32 дописывает uint32
func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// U64 дописывает uint64
func (w *Writer) U64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// I32 дописывает int32
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// F32 дописывает float32
func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// Bytes дописывает срез байтов
func (w *Writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Len возвращает текущую длину полезной нагрузки
func (w *Writer) Len() int {
	return len(w.buf)
}

// Finish дописывает байт тега и возвращает готовое сообщение
func (w *Writer) Finish(tag Tag) []byte {
	w.buf = append(w.buf, byte(tag))
	return w.buf
}
