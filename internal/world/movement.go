package world

import (
	"github.com/annel0/voxel-sim/internal/vec"
)

const (
	// movementBudget ограничивает число попыток найти свободную позицию
	movementBudget = 8
	// probeOffset — расстояние до диагональных пробных точек
	probeOffset float32 = 0.3
	// nudgeStep — величина корректирующего сдвига от столкнувшейся пробы
	nudgeStep float32 = 0.05
)

// probeDirections — восемь диагональных смещений вокруг кандидата
var probeDirections = [8]vec.Vec3Float{
	{X: probeOffset, Y: probeOffset, Z: probeOffset},
	{X: probeOffset, Y: probeOffset, Z: -probeOffset},
	{X: probeOffset, Y: -probeOffset, Z: probeOffset},
	{X: probeOffset, Y: -probeOffset, Z: -probeOffset},
	{X: -probeOffset, Y: probeOffset, Z: probeOffset},
	{X: -probeOffset, Y: probeOffset, Z: -probeOffset},
	{X: -probeOffset, Y: -probeOffset, Z: probeOffset},
	{X: -probeOffset, Y: -probeOffset, Z: -probeOffset},
}

// Collide проверяет, попадает ли точка в непрозрачный блок.
// Нерезидентный чанк считается сплошным: в незагруженное пространство
// двигаться нельзя.
func (w *World) Collide(chunkPos ChunkPosition, offset vec.Vec3Float) bool {
	chunkPos, offset = chunkPos.Normalize(offset)
	chunk := w.GetChunk(chunkPos)
	if chunk == nil {
		return true
	}
	return !chunk.Get(offset.Floor()).Transparent()
}

// ResolveMovement применяет желаемое смещение к позиции игрока.
// Если точка назначения сталкивается, вокруг неё опрашиваются восемь
// диагональных проб; от каждой столкнувшейся накапливается небольшой
// корректирующий сдвиг, и попытка повторяется. После исчерпания бюджета
// итераций игрок остаётся в последней свободной позиции.
func (w *World) ResolveMovement(chunkPos ChunkPosition, position, delta vec.Vec3Float) (ChunkPosition, vec.Vec3Float, bool) {
	candidateChunk, candidate := chunkPos.Normalize(position.Add(delta))

	for i := 0; i < movementBudget; i++ {
		if !w.Collide(candidateChunk, candidate) {
			return candidateChunk, candidate, true
		}

		var nudge vec.Vec3Float
		for _, probe := range probeDirections {
			if w.Collide(candidateChunk, candidate.Add(probe)) {
				nudge = nudge.Sub(probe.Mul(nudgeStep / probeOffset))
			}
		}
		if nudge.IsZero() {
			// Все пробы свободны, а центр — нет: выталкивать некуда
			break
		}
		candidateChunk, candidate = candidateChunk.Normalize(candidate.Add(nudge))
	}

	return chunkPos, position, false
}
