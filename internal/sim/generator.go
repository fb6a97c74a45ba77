package sim

import (
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/metrics"
	"github.com/annel0/voxel-sim/internal/protocol"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/worker"
	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/gen"
)

// GeneratorState — роль генератора террейна: получает запросы колонок и
// возвращает родителю сериализованные чанки плюс телеметрию генерации
type GeneratorState struct {
	terrain       *gen.TerrainGenerator
	highestChunkY int
	lowestChunkY  int

	logger *logging.Logger
}

func newGeneratorState(a *worker.Actor, payload []byte) *GeneratorState {
	init, err := protocol.DecodeInitGenerator(payload)
	if err != nil {
		panic(err)
	}

	g := &GeneratorState{
		terrain:       gen.NewTerrainGenerator(init.Seed),
		highestChunkY: int(init.HighestChunkY),
		lowestChunkY:  int(init.LowestChunkY),
		logger:        logging.GetGeneratorLogger(),
	}
	g.logger.Info("Генератор %s запущен: сид %d, Y %d..%d",
		a.UID(), init.Seed, g.lowestChunkY, g.highestChunkY)
	return g
}

func (g *GeneratorState) handleMessage(a *worker.Actor, tag protocol.Tag, msg worker.Message) {
	if tag != protocol.TagGenerateColumn {
		panic("генератор: неожиданное сообщение " + tag.String())
	}

	request, err := protocol.DecodeGenerateColumn(protocol.Payload(msg.Bytes))
	if err != nil {
		panic(err)
	}

	start := time.Now()
	count := g.highestChunkY - g.lowestChunkY + 1
	writer := protocol.NewColumnReplyWriter(request.X, request.Z, count)
	infos := make([]protocol.ChunkInfoRecord, 0, count)

	m := metrics.Get()
	for y := g.highestChunkY; y >= g.lowestChunkY; y-- {
		position := world.ChunkPositionFromIndex(vec.Vec3{
			X: int(request.X),
			Y: y,
			Z: int(request.Z),
		})

		chunk, info := g.terrain.FillChunk(position)
		if chunk == nil {
			writer.WriteNone()
		} else {
			writer.WriteChunk(chunk)
		}

		infos = append(infos, protocol.ChunkInfoRecord{
			Elapsed:     info.Elapsed,
			NonAirCount: info.NonAirCount,
		})
		m.ChunksGenerated.Inc()
		m.ChunkGenSeconds.Observe(info.Elapsed.Seconds())
	}

	a.SendParent(writer.Finish())
	a.SendParent(protocol.EncodeChunkInfo(infos))
	logging.LogColumnGenerated(a.UID(), int(request.X), int(request.Z), count, time.Since(start))
}

func (g *GeneratorState) update(*worker.Actor) {}
