package gen

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/annel0/voxel-sim/internal/world"
)

// usage различает независимые потребителей шума, чтобы производные сиды
// не пересекались
type usage byte

const (
	usageFillChunk usage = iota
	usageFillWorld
)

// deriveSeed детерминированно выводит сид из мирового сида, углового
// блока чанка и назначения. Два независимых генератора, получившие одну
// и ту же колонку в любом порядке, обязаны выдать побитово идентичный
// результат — поэтому никакого глобального состояния, только хэш входов.
func deriveSeed(worldSeed uint64, position world.ChunkPosition, u usage) int64 {
	origin := position.Block()

	var buf [21]byte
	binary.LittleEndian.PutUint64(buf[0:8], worldSeed)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(origin.X)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(int32(origin.Y)))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(int32(origin.Z)))
	buf[20] = byte(u)

	return int64(xxhash.Sum64(buf[:]))
}
