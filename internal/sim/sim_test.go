package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-sim/internal/mesh"
	"github.com/annel0/voxel-sim/internal/protocol"
	"github.com/annel0/voxel-sim/internal/stats"
	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/worker"
)

// collectorState — корневой актор-приемник: складывает все входящие
// сообщения в канал для проверок
type collectorState struct {
	messages chan worker.Message
}

func newCollector() *collectorState {
	return &collectorState{messages: make(chan worker.Message, 1024)}
}

func (c *collectorState) HandleMessage(_ *worker.Actor, msg worker.Message) { c.messages <- msg }
func (c *collectorState) Update(*worker.Actor)                             {}

// awaitTag ждет первое сообщение с заданным тегом, пересчитывая попутные
func awaitTag(t *testing.T, c *collectorState, want protocol.Tag, seen map[protocol.Tag]int, deadline time.Duration) worker.Message {
	t.Helper()
	timeout := time.After(deadline)
	for {
		select {
		case msg := <-c.messages:
			tag, err := protocol.TagOf(msg.Bytes)
			require.NoError(t, err)
			seen[tag]++
			if tag == want {
				return msg
			}
		case <-timeout:
			t.Fatalf("сообщение %v не пришло за %v (получено: %v)", want, deadline, seen)
			return worker.Message{}
		}
	}
}

// TestSimulationBootstrap: InitSimulation поднимает мир, генераторы
// заполняют все колонки, рендереру уходят телеметрия и меши, команда
// движения получает ответ
func TestSimulationBootstrap(t *testing.T) {
	pool := worker.NewPool(nil)
	defer pool.Shutdown()

	opts := Options{ViewDistance: 1, WorldHeight: 4, Generators: 1}
	collector := newCollector()
	root := pool.Spawn(collector)
	simulation := pool.SpawnWithParent(root, NewDispatcher(opts))

	pool.Send(root, simulation, protocol.InitSimulation{Seed: 5}.Encode())

	// Сетка 3x3 колонок; каждая приносит ChunkInfo на 4 чанка
	seen := map[protocol.Tag]int{}
	columns := (2*opts.ViewDistance + 1) * (2*opts.ViewDistance + 1)
	var lastInfo worker.Message
	for seen[protocol.TagChunkInfo] < columns {
		lastInfo = awaitTag(t, collector, protocol.TagChunkInfo, seen, 30*time.Second)
	}

	records, err := protocol.DecodeChunkInfo(protocol.Payload(lastInfo.Bytes))
	require.NoError(t, err)
	assert.Len(t, records, opts.WorldHeight)

	// Глубинный чанк колонки (0,0) гарантированно непуст, значит хотя бы
	// один пакет MeshData обязан дойти
	if seen[protocol.TagMeshData] == 0 {
		awaitTag(t, collector, protocol.TagMeshData, seen, 30*time.Second)
	}

	// Команда движения отвечает отправителю даже при заблокированном
	// смещении (после исчерпания бюджета тиков)
	pool.Send(root, simulation, protocol.MovementCommand{
		Delta: vec.Vec3Float{X: 0, Y: 0.25, Z: 0},
	}.Encode())

	msg := awaitTag(t, collector, protocol.TagMovementCommandReply, seen, 10*time.Second)
	reply, err := protocol.DecodeMovementCommandReply(protocol.Payload(msg.Bytes))
	require.NoError(t, err)

	// Позиция в ответе нормализована внутрь чанка
	for _, v := range []float32{reply.Position.X, reply.Position.Y, reply.Position.Z} {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(16))
	}
}

// TestRendererAccounting: рендерер ведет статистику по ChunkInfo и
// MeshData
func TestRendererAccounting(t *testing.T) {
	pool := worker.NewPool(nil)
	defer pool.Shutdown()

	statistics := stats.New()
	renderer := pool.Spawn(NewRendererDispatcher(DefaultOptions(), NewRendererState(statistics)))

	pool.Send(0, renderer, protocol.EncodeChunkInfo([]protocol.ChunkInfoRecord{
		{Elapsed: time.Millisecond, NonAirCount: 4096},
		{Elapsed: 2 * time.Millisecond, NonAirCount: 17},
	}))

	w := protocol.NewMeshDataWriter()
	w.WriteMesh(vec.Vec3{X: 0, Y: 0, Z: 0},
		[]mesh.Vertex{{Pos: [4]float32{0, 0, 0, 1}}},
		[]uint16{0, 0, 0, 0, 0, 0})
	pool.Send(0, renderer, w.Finish())

	deadline := time.After(5 * time.Second)
	for statistics.TotalChunks() != 2 || statistics.TotalMeshes() != 1 {
		select {
		case <-deadline:
			t.Fatalf("статистика не сошлась: чанков %d, мешей %d",
				statistics.TotalChunks(), statistics.TotalMeshes())
		case <-time.After(10 * time.Millisecond):
		}
	}
}
