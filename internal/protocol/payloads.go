package protocol

import (
	"fmt"
	"time"

	"github.com/annel0/voxel-sim/internal/vec"
)

// InitSimulation переводит актора в роль симуляции
type InitSimulation struct {
	Seed uint64
}

// Encode сериализует сообщение
func (m InitSimulation) Encode() []byte {
	w := NewWriter(8)
	w.U64(m.Seed)
	return w.Finish(TagInitSimulation)
}

// DecodeInitSimulation разбирает полезную нагрузку InitSimulation
func DecodeInitSimulation(payload []byte) (InitSimulation, error) {
	r := NewReader(payload)
	m := InitSimulation{Seed: r.U64()}
	return m, expectDrained(r, "InitSimulation")
}

// InitGenerator переводит актора в роль генератора
type InitGenerator struct {
	Seed          uint64
	HighestChunkY int32
	LowestChunkY  int32
}

// Encode сериализует сообщение
func (m InitGenerator) Encode() []byte {
	w := NewWriter(16)
	w.U64(m.Seed)
	w.I32(m.HighestChunkY)
	w.I32(m.LowestChunkY)
	return w.Finish(TagInitGenerator)
}

// DecodeInitGenerator разбирает полезную нагрузку InitGenerator
func DecodeInitGenerator(payload []byte) (InitGenerator, error) {
	r := NewReader(payload)
	m := InitGenerator{
		Seed:          r.U64(),
		HighestChunkY: r.I32(),
		LowestChunkY:  r.I32(),
	}
	return m, expectDrained(r, "InitGenerator")
}

// GenerateColumn запрашивает генерацию одной колонки чанков
type GenerateColumn struct {
	X int32
	Z int32
}

// Encode сериализует сообщение
func (m GenerateColumn) Encode() []byte {
	w := NewWriter(8)
	w.I32(m.X)
	w.I32(m.Z)
	return w.Finish(TagGenerateColumn)
}

// DecodeGenerateColumn разбирает полезную нагрузку GenerateColumn
func DecodeGenerateColumn(payload []byte) (GenerateColumn, error) {
	r := NewReader(payload)
	m := GenerateColumn{X: r.I32(), Z: r.I32()}
	return m, expectDrained(r, "GenerateColumn")
}

// PlayerCommand — команда установки или разрушения блоков.
// Положительный Diameter ставит сферу этого диаметра, отрицательный —
// ломает.
type PlayerCommand struct {
	PlayerChunk vec.Vec3
	Position    vec.Vec3Float
	Direction   vec.Vec3Float
	Diameter    int32
}

// Encode сериализует сообщение
func (m PlayerCommand) Encode() []byte {
	w := NewWriter(40)
	writeVec3(w, m.PlayerChunk)
	writeVec3Float(w, m.Position)
	writeVec3Float(w, m.Direction)
	w.I32(m.Diameter)
	return w.Finish(TagPlayerCommand)
}

// DecodePlayerCommand разбирает полезную нагрузку PlayerCommand
func DecodePlayerCommand(payload []byte) (PlayerCommand, error) {
	r := NewReader(payload)
	m := PlayerCommand{
		PlayerChunk: readVec3(r),
		Position:    readVec3Float(r),
		Direction:   readVec3Float(r),
		Diameter:    r.I32(),
	}
	return m, expectDrained(r, "PlayerCommand")
}

// MovementCommand — желаемое смещение игрока
type MovementCommand struct {
	Delta vec.Vec3Float
}

// Encode сериализует сообщение
func (m MovementCommand) Encode() []byte {
	w := NewWriter(12)
	writeVec3Float(w, m.Delta)
	return w.Finish(TagMovementCommand)
}

// DecodeMovementCommand разбирает полезную нагрузку MovementCommand
func DecodeMovementCommand(payload []byte) (MovementCommand, error) {
	r := NewReader(payload)
	m := MovementCommand{Delta: readVec3Float(r)}
	return m, expectDrained(r, "MovementCommand")
}

// MovementCommandReply — итоговая пара (чанк, позиция) после разрешения
// коллизий
type MovementCommandReply struct {
	Chunk    vec.Vec3
	Position vec.Vec3Float
}

// Encode сериализует сообщение
func (m MovementCommandReply) Encode() []byte {
	w := NewWriter(24)
	writeVec3(w, m.Chunk)
	writeVec3Float(w, m.Position)
	return w.Finish(TagMovementCommandReply)
}

// DecodeMovementCommandReply разбирает полезную нагрузку MovementCommandReply
func DecodeMovementCommandReply(payload []byte) (MovementCommandReply, error) {
	r := NewReader(payload)
	m := MovementCommandReply{
		Chunk:    readVec3(r),
		Position: readVec3Float(r),
	}
	return m, expectDrained(r, "MovementCommandReply")
}

// EncodeChunkRemoval сериализует последовательность позиций удаленных
// чанков
func EncodeChunkRemoval(positions []vec.Vec3) []byte {
	w := NewWriter(len(positions) * 12)
	for _, p := range positions {
		writeVec3(w, p)
	}
	return w.Finish(TagChunkRemoval)
}

// DecodeChunkRemoval разбирает полезную нагрузку ChunkRemoval
func DecodeChunkRemoval(payload []byte) ([]vec.Vec3, error) {
	r := NewReader(payload)
	positions := make([]vec.Vec3, 0, len(payload)/12)
	for r.Remaining() > 0 {
		positions = append(positions, readVec3(r))
		if r.Err() != nil {
			return nil, fmt.Errorf("ChunkRemoval: %w", r.Err())
		}
	}
	return positions, nil
}

// ChunkInfoRecord — телеметрия генерации одного чанка
type ChunkInfoRecord struct {
	Elapsed     time.Duration
	NonAirCount uint16
}

// chunkInfoRecordSize: u64 секунды + u32 наносекунды + u16 счетчик +
// u16 выравнивание
const chunkInfoRecordSize = 8 + 4 + 2 + 2

// EncodeChunkInfo сериализует записи телеметрии генерации
func EncodeChunkInfo(records []ChunkInfoRecord) []byte {
	w := NewWriter(len(records) * chunkInfoRecordSize)
	for _, rec := range records {
		w.U64(uint64(rec.Elapsed / time.Second))
		w.U32(uint32(rec.Elapsed % time.Second))
		w.U16(rec.NonAirCount)
		w.U16(0) // выравнивание
	}
	return w.Finish(TagChunkInfo)
}

// DecodeChunkInfo разбирает полезную нагрузку ChunkInfo
func DecodeChunkInfo(payload []byte) ([]ChunkInfoRecord, error) {
	r := NewReader(payload)
	records := make([]ChunkInfoRecord, 0, len(payload)/chunkInfoRecordSize)
	for r.Remaining() > 0 {
		secs := r.U64()
		nanos := r.U32()
		count := r.U16()
		r.Skip(2)
		if r.Err() != nil {
			return nil, fmt.Errorf("ChunkInfo: %w", r.Err())
		}
		records = append(records, ChunkInfoRecord{
			Elapsed:     time.Duration(secs)*time.Second + time.Duration(nanos),
			NonAirCount: count,
		})
	}
	return records, nil
}

func writeVec3(w *Writer, v vec.Vec3) {
	w.I32(int32(v.X))
	w.I32(int32(v.Y))
	w.I32(int32(v.Z))
}

func readVec3(r *Reader) vec.Vec3 {
	return vec.Vec3{X: int(r.I32()), Y: int(r.I32()), Z: int(r.I32())}
}

func writeVec3Float(w *Writer, v vec.Vec3Float) {
	w.F32(v.X)
	w.F32(v.Y)
	w.F32(v.Z)
}

func readVec3Float(r *Reader) vec.Vec3Float {
	return vec.Vec3Float{X: r.F32(), Y: r.F32(), Z: r.F32()}
}

// expectDrained убеждается, что полезная нагрузка прочитана целиком:
// лишние байты означают несовпадение версий протокола
func expectDrained(r *Reader, name string) error {
	if r.Err() != nil {
		return fmt.Errorf("%s: %w", name, r.Err())
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("%s: %d лишних байт в конце сообщения", name, r.Remaining())
	}
	return nil
}
