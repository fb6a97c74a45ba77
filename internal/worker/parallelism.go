package worker

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/annel0/voxel-sim/internal/logging"
)

// Запасное число генераторов, если опрос CPU не удался
const fallbackParallelism = 4

// Parallelism возвращает число логических ядер — столько генераторов
// террейна имеет смысл держать
func Parallelism() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts <= 0 {
		logging.LogWarn("Не удалось определить число ядер CPU (%v), используем %d", err, fallbackParallelism)
		if n := runtime.NumCPU(); n > 0 {
			return n
		}
		return fallbackParallelism
	}
	return counts
}
