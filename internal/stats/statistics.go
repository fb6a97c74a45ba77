// Package stats накапливает телеметрию генерации чанков и построения
// мешей и периодически печатает текстовый отчет.
package stats

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ChunkRecord — телеметрия генерации одного чанка
type ChunkRecord struct {
	NonAirBlockCount uint16
	Elapsed          time.Duration
}

// MeshRecord — телеметрия построения одного меша
type MeshRecord struct {
	Elapsed   time.Duration
	FaceCount int
}

// Statistics потокобезопасно накапливает записи. Отчет показывает и
// накопленные итоги, и дельту с прошлого отчета.
type Statistics struct {
	mu sync.Mutex

	chunkRecords []ChunkRecord
	meshRecords  []MeshRecord

	totalChunkTime     time.Duration
	totalMeshTime      time.Duration
	fullInvisibleCount int

	// Счетчики на момент прошлого отчета
	reportedChunks int
	reportedMeshes int
	reports        int
}

// New создает пустой накопитель
func New() *Statistics {
	return &Statistics{}
}

// ChunkGenerated записывает телеметрию генерации чанка
func (s *Statistics) ChunkGenerated(rec ChunkRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalChunkTime += rec.Elapsed
	s.chunkRecords = append(s.chunkRecords, rec)
}

// MeshGenerated записывает телеметрию построения меша
func (s *Statistics) MeshGenerated(rec MeshRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalMeshTime += rec.Elapsed
	s.meshRecords = append(s.meshRecords, rec)
}

// FullInvisibleChunk отмечает заполненный, но невидимый чанк
func (s *Statistics) FullInvisibleChunk() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullInvisibleCount++
}

func sumChunkTime(records []ChunkRecord) time.Duration {
	var total time.Duration
	for _, rec := range records {
		total += rec.Elapsed
	}
	return total
}

func sumMeshTime(records []MeshRecord) time.Duration {
	var total time.Duration
	for _, rec := range records {
		total += rec.Elapsed
	}
	return total
}

func writeLine(w io.Writer, count int, total time.Duration) {
	if count == 0 {
		fmt.Fprintf(w, "    interval: 0 generated\n")
		return
	}
	fmt.Fprintf(w, "    interval: %4d generated, %6.2fms total, %6.2fms average\n",
		count,
		total.Seconds()*1000.0,
		total.Seconds()*1000.0/float64(count))
}

// Report печатает отчет и сдвигает границу интервала
func (s *Statistics) Report(w io.Writer) error {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports++
	fmt.Fprintf(w, "\nReport: %d\n", s.reports)

	fmt.Fprintf(w, "Chunks:\n")
	fmt.Fprintf(w, "    total: %4d generated, %6.2fms total, %6.2fms average\n",
		len(s.chunkRecords),
		s.totalChunkTime.Seconds()*1000.0,
		avgMillis(s.totalChunkTime, len(s.chunkRecords)))
	intervalChunks := s.chunkRecords[s.reportedChunks:]
	writeLine(w, len(intervalChunks), sumChunkTime(intervalChunks))

	fmt.Fprintf(w, "Chunk meshes:\n")
	fmt.Fprintf(w, "    total: %4d generated, %6.2fms total, %6.2fms average\n",
		len(s.meshRecords),
		s.totalMeshTime.Seconds()*1000.0,
		avgMillis(s.totalMeshTime, len(s.meshRecords)))
	intervalMeshes := s.meshRecords[s.reportedMeshes:]
	writeLine(w, len(intervalMeshes), sumMeshTime(intervalMeshes))
	fmt.Fprintf(w, "    full but invisible: %d\n", s.fullInvisibleCount)

	s.reportedChunks = len(s.chunkRecords)
	s.reportedMeshes = len(s.meshRecords)

	_, err := fmt.Fprintf(w, "Statistics: %.2fms printing time\n",
		time.Since(start).Seconds()*1000.0)
	return err
}

func avgMillis(total time.Duration, count int) float64 {
	if count == 0 {
		return 0
	}
	return total.Seconds() * 1000.0 / float64(count)
}

// TotalChunks возвращает число записанных генераций чанков
func (s *Statistics) TotalChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunkRecords)
}

// TotalMeshes возвращает число записанных построений мешей
func (s *Statistics) TotalMeshes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meshRecords)
}
