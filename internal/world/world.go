package world

import (
	"sort"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// airChunkIndex — индекс общего неизменяемого воздушного чанка.
// Все ни разу не записанные пустые чанки ссылаются на него, чтобы не
// выделять по 4096 байт на каждый.
const airChunkIndex = 0

// cropHysteresisSq — квадрат расстояния (в чанках), которое игрок должен
// пройти с прошлой подрезки, прежде чем подрезка запустится снова
const cropHysteresisSq = 4

// ColumnKey идентифицирует колонку чанков по горизонтальным координатам
type ColumnKey struct {
	X, Z int
}

// World — авторитетное хранилище чанков с очередями генерации и ремеша.
// Все мутации происходят строго внутри актора симуляции, поэтому
// синхронизация не нужна.
type World struct {
	viewDistance int

	// HighestChunkY и LowestChunkY задают вертикальный диапазон
	// генерируемых чанков (включительно)
	HighestChunkY int
	LowestChunkY  int

	chunks          []Chunk
	freeSlots       []int
	positionToIndex map[ChunkPosition]int

	generationQueue []ColumnKey
	pendingColumns  map[ColumnKey]struct{}

	meshQueue []ChunkPosition

	lastCrop ChunkPosition
}

// NewWorld создает мир с указанной дистанцией видимости и высотой в
// чанках. Очередь генерации заполняется всеми колонками в квадрате
// видимости и сортируется по квадрату горизонтального расстояния от
// начала координат — ближние колонки генерируются первыми.
func NewWorld(viewDistance, height int) *World {
	// 2 -> -1..=0
	// 3 -> -1..=1
	// 4 -> -2..=1
	lowest := -height / 2
	highest := lowest + height - 1

	queue := make([]ColumnKey, 0, (2*viewDistance+1)*(2*viewDistance+1))
	for x := -viewDistance; x <= viewDistance; x++ {
		for z := -viewDistance; z <= viewDistance; z++ {
			queue = append(queue, ColumnKey{X: x, Z: z})
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		return a.X*a.X+a.Z*a.Z < b.X*b.X+b.Z*b.Z
	})

	air := Chunk{Transparency: AllTransparent}

	return &World{
		viewDistance:    viewDistance,
		HighestChunkY:   highest,
		LowestChunkY:    lowest,
		chunks:          []Chunk{air},
		positionToIndex: make(map[ChunkPosition]int),
		generationQueue: queue,
		pendingColumns:  make(map[ColumnKey]struct{}),
	}
}

// NextColumnToGenerate снимает следующую колонку с очереди генерации и
// помечает её ожидающей ответа
func (w *World) NextColumnToGenerate() (ColumnKey, bool) {
	if len(w.generationQueue) == 0 {
		return ColumnKey{}, false
	}
	key := w.generationQueue[0]
	w.generationQueue = w.generationQueue[1:]
	w.pendingColumns[key] = struct{}{}
	return key, true
}

// FinishColumn снимает пометку ожидания с колонки. Возвращает false для
// устаревшего ответа (колонка уже подрезана) — такой ответ игнорируется.
func (w *World) FinishColumn(key ColumnKey) bool {
	if _, ok := w.pendingColumns[key]; !ok {
		return false
	}
	delete(w.pendingColumns, key)
	return true
}

// GetChunk возвращает чанк по позиции или nil, если чанк не резидентен.
// Возвращённый указатель действителен до следующей мутации хранилища.
func (w *World) GetChunk(position ChunkPosition) *Chunk {
	index, ok := w.positionToIndex[position]
	if !ok {
		return nil
	}
	return &w.chunks[index]
}

// getChunkMut возвращает чанк для записи. Общий воздушный чанк никогда
// не мутируется: при cloneAir запись в него сначала копирует его в
// свежий слот (copy-on-write), иначе возвращается nil.
func (w *World) getChunkMut(position ChunkPosition, cloneAir bool) *Chunk {
	index, ok := w.positionToIndex[position]
	if !ok {
		return nil
	}
	if index == airChunkIndex {
		if !cloneAir {
			return nil
		}
		index = w.allocSlot(w.chunks[airChunkIndex])
		w.positionToIndex[position] = index
	}
	return &w.chunks[index]
}

// allocSlot помещает чанк в свободный слот плотного массива
func (w *World) allocSlot(chunk Chunk) int {
	if n := len(w.freeSlots); n > 0 {
		index := w.freeSlots[n-1]
		w.freeSlots = w.freeSlots[:n-1]
		w.chunks[index] = chunk
		return index
	}
	w.chunks = append(w.chunks, chunk)
	return len(w.chunks) - 1
}

// AddChunk устанавливает сгенерированный чанк и ставит в очередь ремеша
// его самого и шесть соседей: появившийся чанк меняет то, что соседям
// нужно отсекать.
func (w *World) AddChunk(position ChunkPosition, chunk Chunk) {
	w.positionToIndex[position] = w.allocSlot(chunk)
	w.requestMeshUpdate(position)
	w.requestNeighbourMeshUpdates(position)
}

// AddAirChunk регистрирует пустой чанк как ссылку на общий воздушный
// чанк. Свой меш ему не нужен, но соседям может открыться граница.
func (w *World) AddAirChunk(position ChunkPosition) {
	w.positionToIndex[position] = airChunkIndex
	w.requestNeighbourMeshUpdates(position)
}

func (w *World) requestNeighbourMeshUpdates(position ChunkPosition) {
	for _, dir := range vec.Directions {
		w.requestMeshUpdate(position.Plus(dir))
	}
}

func (w *World) requestMeshUpdate(position ChunkPosition) {
	// Воздушные чанки не мешатся, поэтому cloneAir=false заодно
	// отфильтровывает их.
	if chunk := w.getChunkMut(position, false); chunk != nil && !chunk.InMeshQueue {
		chunk.InMeshQueue = true
		w.meshQueue = append(w.meshQueue, position)
	}
}

// Neighbours — шесть смежных по граням чанков (по ссылке, без копий)
type Neighbours struct {
	PosX, NegX, PosY, NegY, PosZ, NegZ *Chunk
}

// Transparent возвращает бит прозрачности соседа, обращенного к данному
// чанку указанной гранью
func (n *Neighbours) Transparent(face Face) bool {
	switch face {
	case FacePosX:
		return n.PosX.GetTransparency(FaceNegX)
	case FaceNegX:
		return n.NegX.GetTransparency(FacePosX)
	case FacePosY:
		return n.PosY.GetTransparency(FaceNegY)
	case FaceNegY:
		return n.NegY.GetTransparency(FacePosY)
	case FacePosZ:
		return n.PosZ.GetTransparency(FaceNegZ)
	default:
		return n.NegZ.GetTransparency(FacePosZ)
	}
}

// Neighbours возвращает все шесть соседей чанка или nil, если хотя бы
// один ещё не резидентен — без полного окружения меш не построить.
func (w *World) Neighbours(position ChunkPosition) *Neighbours {
	n := Neighbours{
		PosX: w.GetChunk(position.Plus(vec.PosX)),
		NegX: w.GetChunk(position.Plus(vec.NegX)),
		PosY: w.GetChunk(position.Plus(vec.PosY)),
		NegY: w.GetChunk(position.Plus(vec.NegY)),
		PosZ: w.GetChunk(position.Plus(vec.PosZ)),
		NegZ: w.GetChunk(position.Plus(vec.NegZ)),
	}
	if n.PosX == nil || n.NegX == nil || n.PosY == nil || n.NegY == nil ||
		n.PosZ == nil || n.NegZ == nil {
		return nil
	}
	return &n
}

// MeshUpdateKind классифицирует результат ремеша чанка
type MeshUpdateKind uint8

const (
	// MeshEmpty — в чанке нечего рисовать
	MeshEmpty MeshUpdateKind = iota
	// MeshFullInvisible — чанк заполнен и закрыт непрозрачными соседями
	// со всех сторон; рендерер не рисует его, но обязан учитывать
	MeshFullInvisible
	// MeshGeometry — чанку нужна настоящая геометрия
	MeshGeometry
)

// MeshUpdate — один элемент, снятый с очереди ремеша. Для MeshGeometry
// указатели Chunk и Neighbours действительны до следующей мутации мира.
type MeshUpdate struct {
	Position   ChunkPosition
	Kind       MeshUpdateKind
	Chunk      *Chunk
	Neighbours *Neighbours
}

// UpdatedMeshes опустошает очередь ремеша. Пустые чанки дают MeshEmpty,
// заполненные и полностью закрытые — MeshFullInvisible (без сканирования
// блоков), остальные — MeshGeometry с данными для мешера. Чанки без
// полного набора соседей молча пропускаются: они вернутся в очередь,
// когда появится последний сосед.
func (w *World) UpdatedMeshes() []MeshUpdate {
	result := make([]MeshUpdate, 0, len(w.meshQueue))

	queue := w.meshQueue
	w.meshQueue = nil

	for _, position := range queue {
		chunk := w.getChunkMut(position, false)
		if chunk == nil {
			continue // подрезан, пока стоял в очереди
		}
		chunk.InMeshQueue = false

		if chunk.NonAirCount == 0 {
			result = append(result, MeshUpdate{Position: position, Kind: MeshEmpty})
			continue
		}

		neighbours := w.Neighbours(position)
		if neighbours == nil {
			continue
		}

		if chunk.NonAirCount == MaxBlockCount &&
			!neighbours.Transparent(FacePosX) &&
			!neighbours.Transparent(FaceNegX) &&
			!neighbours.Transparent(FacePosY) &&
			!neighbours.Transparent(FaceNegY) &&
			!neighbours.Transparent(FacePosZ) &&
			!neighbours.Transparent(FaceNegZ) {
			result = append(result, MeshUpdate{Position: position, Kind: MeshFullInvisible})
			continue
		}

		result = append(result, MeshUpdate{
			Position:   position,
			Kind:       MeshGeometry,
			Chunk:      chunk,
			Neighbours: neighbours,
		})
	}

	return result
}

// SetBlock записывает один воксель. Возвращает предыдущий блок и признак
// того, что чанк резидентен. Счетчик NonAirCount обновляется
// инкрементально; маска прозрачности пересчитывается только для записей
// в граничный слой. Чанк и соседи, разделяющие изменённую границу,
// ставятся в очередь ремеша.
func (w *World) SetBlock(position BlockPosition, id block.BlockID) (block.BlockID, bool) {
	chunkPos := position.Chunk()
	chunk := w.getChunkMut(chunkPos, id != block.AirBlockID)
	if chunk == nil {
		if id == block.AirBlockID && w.GetChunk(chunkPos) != nil {
			// Запись воздуха в общий воздушный чанк: ничего не меняется
			return block.AirBlockID, true
		}
		return block.AirBlockID, false
	}

	local := position.Local()
	previous := chunk.Blocks[local.X][local.Y][local.Z]
	if previous == id {
		return previous, true
	}

	chunk.Blocks[local.X][local.Y][local.Z] = id
	if previous == block.AirBlockID {
		chunk.NonAirCount++
	}
	if id == block.AirBlockID {
		chunk.NonAirCount--
	}

	const last = ChunkSize - 1
	if local.X == 0 || local.Y == 0 || local.Z == 0 ||
		local.X == last || local.Y == last || local.Z == last {
		chunk.ComputeTransparency()
	}

	for _, dir := range vec.Directions {
		w.requestMeshUpdate(position.Plus(dir).Chunk())
	}

	return previous, true
}

// ChunkCount возвращает число резидентных чанков
func (w *World) ChunkCount() int {
	return len(w.positionToIndex)
}

// Crop удаляет чанки, чьё горизонтальное расстояние от чанка игрока
// превышает дистанцию видимости, и возвращает их позиции для уведомления
// рендерера. Запускается только когда игрок ушел достаточно далеко от
// точки прошлой подрезки, чтобы ограничить собственную стоимость.
func (w *World) Crop(playerChunk ChunkPosition) []ChunkPosition {
	dx := playerChunk.X - w.lastCrop.X
	dz := playerChunk.Z - w.lastCrop.Z
	if dx*dx+dz*dz < cropHysteresisSq {
		return nil
	}
	w.lastCrop = playerChunk

	limitSq := w.viewDistance * w.viewDistance

	var removed []ChunkPosition
	for position, index := range w.positionToIndex {
		dx := position.X - playerChunk.X
		dz := position.Z - playerChunk.Z
		if dx*dx+dz*dz <= limitSq {
			continue
		}
		delete(w.positionToIndex, position)
		if index != airChunkIndex {
			w.freeSlots = append(w.freeSlots, index)
		}
		removed = append(removed, position)
	}

	for key := range w.pendingColumns {
		dx := key.X - playerChunk.X
		dz := key.Z - playerChunk.Z
		if dx*dx+dz*dz > limitSq {
			delete(w.pendingColumns, key)
		}
	}

	return removed
}
