package sim

import (
	"fmt"
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/mesh"
	"github.com/annel0/voxel-sim/internal/metrics"
	"github.com/annel0/voxel-sim/internal/protocol"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/worker"
	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/block"
)

const (
	// Дальность луча команд установки/разрушения блоков
	playerCommandRayDistance = 200

	// Шаг и бюджет дотягивания движения между сообщениями
	movementTickDelay  = 16 * time.Millisecond
	movementTickBudget = 8
)

// SimulationState — роль симуляции: владеет миром, раздает колонки
// генераторам круговым обходом, применяет команды игрока и пересылает
// MeshData/ChunkRemoval/ChunkInfo родителю-рендереру
type SimulationState struct {
	seed  uint64
	world *world.World

	generators    []worker.ID
	nextGenerator int

	playerChunk    world.ChunkPosition
	playerPosition vec.Vec3Float

	// Неразрешенное смещение игрока; дотягивается тиками Update
	pendingDelta vec.Vec3Float
	pendingFrom  worker.ID
	hasPending   bool
	pendingTicks int

	logger *logging.Logger
}

func newSimulationState(a *worker.Actor, opts Options, payload []byte) *SimulationState {
	init, err := protocol.DecodeInitSimulation(payload)
	if err != nil {
		panic(err)
	}

	w := world.NewWorld(opts.ViewDistance, opts.WorldHeight)

	generatorCount := opts.Generators
	if generatorCount <= 0 {
		generatorCount = worker.Parallelism()
	}

	s := &SimulationState{
		seed:   init.Seed,
		world:  w,
		logger: logging.GetSimulationLogger(),
	}

	s.logger.Info("Симуляция запущена: сид %d, %d генераторов, видимость %d чанков",
		init.Seed, generatorCount, opts.ViewDistance)

	initMsg := protocol.InitGenerator{
		Seed:          init.Seed,
		HighestChunkY: int32(w.HighestChunkY),
		LowestChunkY:  int32(w.LowestChunkY),
	}.Encode()

	s.generators = make([]worker.ID, generatorCount)
	for i := range s.generators {
		s.generators[i] = a.SpawnChild(NewDispatcher(opts))
		a.Send(s.generators[i], initMsg)
	}

	s.dispatchColumns(a)
	return s
}

// dispatchColumns раздает всю очередь генерации по генераторам круговым
// обходом
func (s *SimulationState) dispatchColumns(a *worker.Actor) {
	for {
		key, ok := s.world.NextColumnToGenerate()
		if !ok {
			return
		}

		msg := protocol.GenerateColumn{X: int32(key.X), Z: int32(key.Z)}.Encode()
		target := s.generators[s.nextGenerator]
		logging.LogColumnRequest(fmt.Sprintf("%d", target), key.X, key.Z)
		a.Send(target, msg)

		s.nextGenerator++
		if s.nextGenerator >= len(s.generators) {
			s.nextGenerator = 0
		}
	}
}

func (s *SimulationState) handleMessage(a *worker.Actor, tag protocol.Tag, msg worker.Message) {
	switch tag {
	case protocol.TagChunkInfo:
		// Телеметрия генераторов проходит насквозь к рендереру
		a.SendParent(msg.Bytes)
		return

	case protocol.TagGenerateColumnReply:
		s.handleColumnReply(protocol.Payload(msg.Bytes))

	case protocol.TagPlayerCommand:
		command, err := protocol.DecodePlayerCommand(protocol.Payload(msg.Bytes))
		if err != nil {
			panic(err)
		}
		s.applyPlayerCommand(command)

	case protocol.TagMovementCommand:
		command, err := protocol.DecodeMovementCommand(protocol.Payload(msg.Bytes))
		if err != nil {
			panic(err)
		}
		s.applyMovement(a, msg.Sender, command.Delta)

	default:
		panic("симуляция: неожиданное сообщение " + tag.String())
	}

	s.flushMeshes(a)
}

func (s *SimulationState) handleColumnReply(payload []byte) {
	reader, err := protocol.NewColumnReplyReader(payload)
	if err != nil {
		panic(err)
	}

	key := world.ColumnKey{X: int(reader.X), Z: int(reader.Z)}
	stale := !s.world.FinishColumn(key)

	// Устаревший ответ (колонка подрезана, пока генерировалась)
	// дочитывается для проверки протокола, но в мир не попадает
	var chunk world.Chunk
	for y := s.world.HighestChunkY; y >= s.world.LowestChunkY; y-- {
		present, err := reader.Next(&chunk)
		if err != nil {
			panic(err)
		}
		if stale {
			continue
		}

		position := world.ChunkPositionFromIndex(vec.Vec3{X: key.X, Y: y, Z: key.Z})
		if present {
			s.world.AddChunk(position, chunk)
		} else {
			s.world.AddAirChunk(position)
		}
	}
	if err := reader.Drained(); err != nil {
		panic(err)
	}

	if stale {
		s.logger.Debug("Устаревший ответ для колонки (%d,%d) отброшен", key.X, key.Z)
		return
	}
	metrics.Get().ChunksLoaded.Set(float64(s.world.ChunkCount()))
}

// applyPlayerCommand ставит или ломает сферу блоков вокруг точки,
// найденной маршем луча: установка целится в последний прозрачный блок
// перед попаданием, разрушение — в сам непрозрачный
func (s *SimulationState) applyPlayerCommand(c protocol.PlayerCommand) {
	hit := s.world.FindNearestBlockOnRay(
		world.ChunkPositionFromIndex(c.PlayerChunk),
		c.Position,
		c.Direction,
		playerCommandRayDistance,
	)

	var center world.BlockPosition
	var id block.BlockID
	var kind string
	switch {
	case c.Diameter > 0:
		if !hit.HasLastTransparent {
			return
		}
		center, id, kind = hit.LastTransparent, block.DirtBlockID, "place"
	default:
		if !hit.Hit {
			return
		}
		center, id, kind = hit.Block, block.AirBlockID, "break"
	}

	d := int(c.Diameter)
	if d < 0 {
		d = -d
	}
	r := d / 2

	edits := 0
	for x := 0; x < d; x++ {
		for y := 0; y < d; y++ {
			for z := 0; z < d; z++ {
				delta := vec.Vec3{X: x - r, Y: y - r, Z: z - r}
				if delta.LengthSquared() <= r*r {
					if _, ok := s.world.SetBlock(center.Plus(delta), id); ok {
						edits++
					}
				}
			}
		}
	}
	metrics.Get().BlockEdits.WithLabelValues(kind).Add(float64(edits))
}

// applyMovement разрешает смещение игрока. Неразрешимое сразу смещение
// откладывается и дотягивается тиками Update, пока не иссякнет бюджет.
func (s *SimulationState) applyMovement(a *worker.Actor, from worker.ID, delta vec.Vec3Float) {
	chunk, position, ok := s.world.ResolveMovement(s.playerChunk, s.playerPosition, delta)
	if ok {
		s.finishMovement(a, from, chunk, position)
		return
	}

	s.pendingDelta = delta
	s.pendingFrom = from
	s.hasPending = true
	s.pendingTicks = 0
	a.RequestUpdate(movementTickDelay)
}

func (s *SimulationState) finishMovement(a *worker.Actor, to worker.ID, chunk world.ChunkPosition, position vec.Vec3Float) {
	s.playerChunk = chunk
	s.playerPosition = position
	s.hasPending = false

	a.Send(to, protocol.MovementCommandReply{
		Chunk:    chunk.Vec3,
		Position: position,
	}.Encode())

	if removed := s.world.Crop(chunk); len(removed) > 0 {
		positions := make([]vec.Vec3, len(removed))
		for i, p := range removed {
			positions[i] = p.Vec3
		}
		a.SendParent(protocol.EncodeChunkRemoval(positions))
		metrics.Get().ChunksCropped.Add(float64(len(removed)))
		metrics.Get().ChunksLoaded.Set(float64(s.world.ChunkCount()))
	}
}

func (s *SimulationState) update(a *worker.Actor) {
	if !s.hasPending {
		return
	}

	s.pendingTicks++
	chunk, position, ok := s.world.ResolveMovement(s.playerChunk, s.playerPosition, s.pendingDelta)
	if ok {
		s.finishMovement(a, s.pendingFrom, chunk, position)
	} else if s.pendingTicks >= movementTickBudget {
		// Бюджет исчерпан: игрок остается в последней свободной позиции
		s.finishMovement(a, s.pendingFrom, s.playerChunk, s.playerPosition)
	} else {
		a.RequestUpdate(movementTickDelay)
	}

	s.flushMeshes(a)
}

// flushMeshes опустошает очередь ремеша и отправляет родителю один пакет
// MeshData со всеми обновлениями
func (s *SimulationState) flushMeshes(a *worker.Actor) {
	updates := s.world.UpdatedMeshes()
	if len(updates) == 0 {
		return
	}

	m := metrics.Get()
	writer := protocol.NewMeshDataWriter()
	for _, update := range updates {
		switch update.Kind {
		case world.MeshEmpty:
			writer.WriteEmpty(update.Position.Vec3, false)
			m.MeshesBuilt.WithLabelValues("empty").Inc()

		case world.MeshFullInvisible:
			writer.WriteEmpty(update.Position.Vec3, true)
			m.MeshesBuilt.WithLabelValues("full_invisible").Inc()

		case world.MeshGeometry:
			start := time.Now()
			vertices, indices := mesh.Generate(update.Chunk, update.Neighbours)
			m.MeshBuildSeconds.Observe(time.Since(start).Seconds())
			m.MeshesBuilt.WithLabelValues("geometry").Inc()

			writer.WriteMesh(update.Position.Vec3, vertices, indices)
			logging.LogMeshBuilt(update.Position.X, update.Position.Y, update.Position.Z,
				len(vertices), len(indices))
		}
	}

	if !writer.Empty() {
		a.SendParent(writer.Finish())
	}
}
