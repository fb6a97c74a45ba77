// Package sim реализует роли акторов: диспетчер владеет ровно одним
// состоянием роли (Renderer, Simulation или Generator) и переключает его
// по сообщениям InitSimulation/InitGenerator. Сообщение до инициализации
// роли и неизвестный тег — нарушение протокола, а не ситуация времени
// выполнения: такой актор аварийно завершается.
package sim

import (
	"fmt"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/metrics"
	"github.com/annel0/voxel-sim/internal/protocol"
	"github.com/annel0/voxel-sim/internal/worker"

	// Регистрация поведений блоков
	_ "github.com/annel0/voxel-sim/internal/world/block/implementations"
)

// Options — параметры симуляции, не передаваемые по проводу
type Options struct {
	ViewDistance int
	WorldHeight  int
	Generators   int
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		ViewDistance: 12,
		WorldHeight:  16,
		Generators:   0, // 0 — по числу ядер
	}
}

// roleState — состояние конкретной роли актора
type roleState interface {
	handleMessage(a *worker.Actor, tag protocol.Tag, msg worker.Message)
	update(a *worker.Actor)
}

// Dispatcher реализует worker.State и направляет сообщения текущей роли
type Dispatcher struct {
	opts Options
	role roleState
}

// NewDispatcher создает актор без роли: её назначит первое сообщение
// InitSimulation или InitGenerator
func NewDispatcher(opts Options) *Dispatcher {
	return &Dispatcher{opts: opts}
}

// NewRendererDispatcher создает корневой актор в роли рендерера.
// Рендерер — единственная роль, назначаемая при создании, а не сообщением.
func NewRendererDispatcher(opts Options, renderer *RendererState) *Dispatcher {
	return &Dispatcher{opts: opts, role: renderer}
}

// HandleMessage обрабатывает одно входящее сообщение
func (d *Dispatcher) HandleMessage(a *worker.Actor, msg worker.Message) {
	tag, err := protocol.TagOf(msg.Bytes)
	if err != nil {
		logging.LogProtocolError(a.UID(), err, msg.Bytes)
		panic(fmt.Sprintf("актор %d: %v", a.ID(), err))
	}
	logging.LogActorMessage(a.UID(), "IN", tag, protocol.Payload(msg.Bytes))
	metrics.Get().Messages.WithLabelValues(tag.String()).Inc()

	// Сообщения, меняющие роль
	switch tag {
	case protocol.TagInitSimulation:
		if d.role != nil {
			panic(fmt.Sprintf("актор %d: повторная инициализация роли", a.ID()))
		}
		d.role = newSimulationState(a, d.opts, protocol.Payload(msg.Bytes))
		return
	case protocol.TagInitGenerator:
		if d.role != nil {
			panic(fmt.Sprintf("актор %d: повторная инициализация роли", a.ID()))
		}
		d.role = newGeneratorState(a, protocol.Payload(msg.Bytes))
		return
	}

	if d.role == nil {
		panic(fmt.Sprintf("актор %d: сообщение %v до инициализации роли", a.ID(), tag))
	}
	d.role.handleMessage(a, tag, msg)
}

// Update вызывается по таймеру, запрошенному ролью
func (d *Dispatcher) Update(a *worker.Actor) {
	if d.role == nil {
		return
	}
	d.role.update(a)
}
