package sim

import (
	"bytes"
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/protocol"
	"github.com/annel0/voxel-sim/internal/stats"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/worker"
)

// Интервал между отчетами статистики
const reportInterval = 5 * time.Second

// meshEntry — учетная запись меша одного чанка на стороне рендерера
type meshEntry struct {
	VertexCount   int
	IndexCount    int
	FullInvisible bool
}

// RendererState — граница представления: потребляет MeshData,
// ChunkRemoval и ChunkInfo, ведет учет мешей и статистику. Графики здесь
// нет — загрузка буферов и отрисовка остаются за внешним клиентом.
type RendererState struct {
	meshes     map[vec.Vec3]meshEntry
	statistics *stats.Statistics

	playerChunk    vec.Vec3
	playerPosition vec.Vec3Float

	reportScheduled bool

	logger *logging.Logger
}

// NewRendererState создает состояние рендерера с указанным накопителем
// статистики
func NewRendererState(statistics *stats.Statistics) *RendererState {
	return &RendererState{
		meshes:     make(map[vec.Vec3]meshEntry),
		statistics: statistics,
		logger:     logging.GetStatsLogger(),
	}
}

// MeshCount возвращает число учтенных мешей
func (r *RendererState) MeshCount() int {
	return len(r.meshes)
}

func (r *RendererState) handleMessage(a *worker.Actor, tag protocol.Tag, msg worker.Message) {
	if !r.reportScheduled {
		r.reportScheduled = true
		a.RequestUpdate(reportInterval)
	}

	switch tag {
	case protocol.TagMeshData:
		start := time.Now()
		entries, err := protocol.DecodeMeshData(protocol.Payload(msg.Bytes))
		if err != nil {
			panic(err)
		}
		elapsed := time.Since(start)

		for _, entry := range entries {
			if len(entry.Vertices) == 0 && !entry.FullInvisible {
				delete(r.meshes, entry.Chunk)
				continue
			}
			r.meshes[entry.Chunk] = meshEntry{
				VertexCount:   len(entry.Vertices),
				IndexCount:    len(entry.Indices),
				FullInvisible: entry.FullInvisible,
			}
			if entry.FullInvisible {
				r.statistics.FullInvisibleChunk()
				continue
			}
			r.statistics.MeshGenerated(stats.MeshRecord{
				Elapsed:   elapsed / time.Duration(len(entries)),
				FaceCount: len(entry.Indices) / 6,
			})
		}

	case protocol.TagChunkRemoval:
		positions, err := protocol.DecodeChunkRemoval(protocol.Payload(msg.Bytes))
		if err != nil {
			panic(err)
		}
		for _, p := range positions {
			delete(r.meshes, p)
		}

	case protocol.TagChunkInfo:
		records, err := protocol.DecodeChunkInfo(protocol.Payload(msg.Bytes))
		if err != nil {
			panic(err)
		}
		for _, rec := range records {
			r.statistics.ChunkGenerated(stats.ChunkRecord{
				NonAirBlockCount: rec.NonAirCount,
				Elapsed:          rec.Elapsed,
			})
		}

	case protocol.TagMovementCommandReply:
		reply, err := protocol.DecodeMovementCommandReply(protocol.Payload(msg.Bytes))
		if err != nil {
			panic(err)
		}
		r.playerChunk = reply.Chunk
		r.playerPosition = reply.Position

	default:
		panic("рендерер: неожиданное сообщение " + tag.String())
	}
}

func (r *RendererState) update(a *worker.Actor) {
	var buf bytes.Buffer
	if err := r.statistics.Report(&buf); err == nil {
		r.logger.Info("Player: chunk (%d, %d, %d) at (%.2f, %.2f, %.2f), %d meshes%s",
			r.playerChunk.X, r.playerChunk.Y, r.playerChunk.Z,
			r.playerPosition.X, r.playerPosition.Y, r.playerPosition.Z,
			len(r.meshes), buf.String())
	}
	a.RequestUpdate(reportInterval)
}
