// Package worker реализует пул акторов поверх горутин. Каждый актор —
// горутина с буферизованным почтовым ящиком; акторы обмениваются только
// байтовыми сообщениями пакета protocol и не разделяют изменяемое
// состояние. Актор может запросить отложенный вызов Update — так
// симуляция дотягивает движение игрока между сообщениями.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/protocol/replay"
)

// ID идентифицирует актора внутри пула
type ID int

// Message — входящее сообщение актора
type Message struct {
	Sender ID
	Bytes  []byte
}

// State — поведение актора. HandleMessage вызывается на каждое входящее
// сообщение, Update — по истечении задержки, запрошенной через
// Actor.RequestUpdate.
type State interface {
	HandleMessage(a *Actor, msg Message)
	Update(a *Actor)
}

// Размер почтового ящика. Генераторы отвечают колонками по ~мегабайту,
// поэтому ящик должен вмещать всплеск ответов после переезда игрока.
const inboxSize = 1000

// Pool владеет акторами и доставкой сообщений между ними
type Pool struct {
	mu       sync.Mutex
	actors   map[ID]*Actor
	nextID   ID
	recorder *replay.Recorder

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logging.Logger
}

// NewPool создает пустой пул. recorder может быть nil — тогда журнал
// сообщений не пишется.
func NewPool(recorder *replay.Recorder) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		actors:   make(map[ID]*Actor),
		nextID:   1,
		recorder: recorder,
		ctx:      ctx,
		cancel:   cancel,
		logger:   logging.GetWorkerLogger(),
	}
}

// Actor — один участник пула. Методы Actor вызываются только из его
// собственной горутины (внутри HandleMessage/Update).
type Actor struct {
	id     ID
	uid    string
	parent ID
	pool   *Pool
	inbox  chan Message

	// Задержка до следующего Update; отрицательная — не запрошен
	updateDelay time.Duration
}

// Spawn запускает корневого актора (без родителя)
func (p *Pool) Spawn(state State) ID {
	return p.spawn(state, 0)
}

// SpawnWithParent запускает актора с указанным родителем. Используется
// при сборке дерева акторов снаружи пула.
func (p *Pool) SpawnWithParent(parent ID, state State) ID {
	return p.spawn(state, parent)
}

func (p *Pool) spawn(state State, parent ID) ID {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	a := &Actor{
		id:          id,
		uid:         uuid.NewString(),
		parent:      parent,
		pool:        p,
		inbox:       make(chan Message, inboxSize),
		updateDelay: -1,
	}
	p.actors[id] = a
	p.mu.Unlock()

	p.logger.Info("Актор %d (%s) запущен, родитель %d", id, a.uid, parent)

	p.wg.Add(1)
	go a.run(state)
	return id
}

// Send доставляет сообщение актору to от имени from.
// Сообщение с неизвестным адресатом молча отбрасывается: актор мог
// завершиться между отправкой и доставкой.
func (p *Pool) Send(from, to ID, message []byte) {
	p.mu.Lock()
	a, ok := p.actors[to]
	p.mu.Unlock()
	if !ok {
		p.logger.Warn("Сообщение от %d неизвестному актору %d отброшено", from, to)
		return
	}

	if p.recorder != nil {
		if err := p.recorder.Record(message); err != nil {
			p.logger.Error("Запись журнала: %v", err)
		}
	}

	select {
	case a.inbox <- Message{Sender: from, Bytes: message}:
	case <-p.ctx.Done():
	}
}

// Shutdown останавливает все акторы и ждет завершения их горутин
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	if p.recorder != nil {
		if err := p.recorder.Close(); err != nil {
			p.logger.Error("Закрытие журнала: %v", err)
		}
	}
}

// Wait блокируется до остановки пула
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (a *Actor) run(state State) {
	defer a.pool.wg.Done()

	for {
		if a.updateDelay < 0 {
			select {
			case <-a.pool.ctx.Done():
				return
			case msg := <-a.inbox:
				state.HandleMessage(a, msg)
			}
			continue
		}

		timer := time.NewTimer(a.updateDelay)
		select {
		case <-a.pool.ctx.Done():
			timer.Stop()
			return
		case msg := <-a.inbox:
			timer.Stop()
			state.HandleMessage(a, msg)
		case <-timer.C:
			a.updateDelay = -1
			state.Update(a)
		}
	}
}

// ID возвращает идентификатор актора
func (a *Actor) ID() ID {
	return a.id
}

// UID возвращает уникальную метку актора для логов
func (a *Actor) UID() string {
	return a.uid
}

// Parent возвращает идентификатор родителя (0 у корневого актора)
func (a *Actor) Parent() ID {
	return a.parent
}

// SpawnChild запускает дочерний актор
func (a *Actor) SpawnChild(state State) ID {
	return a.pool.spawn(state, a.id)
}

// Send отправляет сообщение другому актору
func (a *Actor) Send(to ID, message []byte) {
	a.pool.Send(a.id, to, message)
}

// SendParent отправляет сообщение родителю
func (a *Actor) SendParent(message []byte) {
	a.pool.Send(a.id, a.parent, message)
}

// RequestUpdate просит вызвать Update не раньше, чем через delay.
// Повторный запрос заменяет предыдущий.
func (a *Actor) RequestUpdate(delay time.Duration) {
	a.updateDelay = delay
}

// CancelUpdate отменяет запрошенный Update
func (a *Actor) CancelUpdate() {
	a.updateDelay = -1
}
