package gen

import (
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/voxel-sim/internal/vec"
	"github.com/annel0/voxel-sim/internal/world"
	"github.com/annel0/voxel-sim/internal/world/block"
)

// Параметры шума. Одна октава на вызов — октавы складываются вручную,
// чтобы амплитуда и частота менялись ровно вдвое за октаву.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 1

	heightOctaves   = 4
	heightBaseFreq  = 0.005
	heightScale     = 40.0
	densityDivisor  = 127.0
	perturbFreq     = 0.1
	stoneThreshold  = 0.1
	sandHeightLimit = 1
)

// ChunkInfo — телеметрия генерации одного чанка
type ChunkInfo struct {
	NonAirCount uint16
	Elapsed     time.Duration
}

// TerrainGenerator — детерминированная функция позиции чанка.
// Глобальный шум (континентальный масштаб) строится один раз на мир из
// мирового сида; шум возмущения строится заново на каждый чанк из
// производного сида, поэтому результат не зависит ни от порядка
// генерации, ни от того, какой из генераторов-акторов выполнил чанк.
type TerrainGenerator struct {
	worldSeed   uint64
	globalNoise *perlin.Perlin
}

// NewTerrainGenerator создает генератор для указанного мирового сида
func NewTerrainGenerator(worldSeed uint64) *TerrainGenerator {
	seed := deriveSeed(worldSeed, world.ChunkPositionFromIndex(vec.Vec3{}), usageFillWorld)
	return &TerrainGenerator{
		worldSeed:   worldSeed,
		globalNoise: perlin.NewPerlinRandSource(noiseAlpha, noiseBeta, noiseOctaves, rand.NewSource(seed)),
	}
}

// height возвращает высоту рельефа в точке (x, z): сумма октав
// двумерного градиентного шума с половинящейся амплитудой и
// удваивающейся частотой
func (g *TerrainGenerator) height(x, z float64) float64 {
	result := 0.0
	amplitude := 1.0
	frequency := heightBaseFreq

	for i := 0; i < heightOctaves; i++ {
		result += amplitude * g.globalNoise.Noise2D(x*frequency, z*frequency)
		amplitude *= 0.5
		frequency *= 2.0
	}

	return result
}

// FillChunk генерирует чанк по позиции. Возвращает nil для чанка без
// единого твердого блока — ниже по конвейеру он представляется общим
// воздушным чанком и не передается по проводу.
func (g *TerrainGenerator) FillChunk(position world.ChunkPosition) (*world.Chunk, ChunkInfo) {
	start := time.Now()

	perturbSeed := deriveSeed(g.worldSeed, position, usageFillChunk)
	perturb := perlin.NewPerlinRandSource(noiseAlpha, noiseBeta, noiseOctaves, rand.NewSource(perturbSeed))

	origin := position.Block()

	var chunk world.Chunk
	var nonAirCount uint16

	for x := 0; x < world.ChunkSize; x++ {
		blockX := origin.X + x
		for z := 0; z < world.ChunkSize; z++ {
			blockZ := origin.Z + z
			globalHeight := g.height(float64(blockX), float64(blockZ)) * heightScale

			for y := 0; y < world.ChunkSize; y++ {
				blockY := origin.Y + y

				baseDensity := (globalHeight - float64(blockY)) / densityDivisor

				noise := perturb.Noise3D(
					float64(blockX)*perturbFreq,
					float64(blockY)*perturbFreq,
					float64(blockZ)*perturbFreq,
				)

				// Возмущение асимметрично: |noise| только уводит
				// плотность от нуля, не меняя знак
				density := baseDensity * (1.0 + math.Abs(noise))

				id := block.AirBlockID
				if density > 0 || blockY < 0 {
					nonAirCount++
					switch {
					case density > stoneThreshold:
						id = block.StoneBlockID
					case density > 0:
						if blockY < sandHeightLimit {
							id = block.SandBlockID
						} else {
							id = block.DirtBlockID
						}
					default:
						id = block.WaterBlockID
					}
				}
				chunk.Blocks[x][y][z] = id
			}
		}
	}

	info := ChunkInfo{NonAirCount: nonAirCount, Elapsed: time.Since(start)}
	if nonAirCount == 0 {
		return nil, info
	}

	chunk.NonAirCount = nonAirCount
	chunk.ComputeTransparency()
	return &chunk, info
}
