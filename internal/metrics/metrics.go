// Package metrics регистрирует Prometheus-метрики симуляции и отдает
// их по HTTP на /metrics.
//
// Метрики:
// * voxel_chunks_generated_total — counter
// * voxel_chunk_generation_seconds — histogram
// * voxel_meshes_built_total{kind} — counter (geometry/empty/full_invisible)
// * voxel_mesh_build_seconds — histogram
// * voxel_chunks_loaded — gauge
// * voxel_chunks_cropped_total — counter
// * voxel_messages_total{tag} — counter
// * voxel_block_edits_total{kind} — counter (place/break)
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/voxel-sim/internal/logging"
)

type SimMetrics struct {
	ChunksGenerated  prometheus.Counter
	ChunkGenSeconds  prometheus.Histogram
	MeshesBuilt      *prometheus.CounterVec
	MeshBuildSeconds prometheus.Histogram
	ChunksLoaded     prometheus.Gauge
	ChunksCropped    prometheus.Counter
	Messages         *prometheus.CounterVec
	BlockEdits       *prometheus.CounterVec
}

var (
	global     *SimMetrics
	globalOnce sync.Once
)

// Get возвращает глобальный набор метрик, регистрируя его при первом
// обращении
func Get() *SimMetrics {
	globalOnce.Do(func() {
		global = newSimMetrics()
	})
	return global
}

func newSimMetrics() *SimMetrics {
	m := &SimMetrics{
		ChunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunks_generated_total",
			Help:      "Общее число сгенерированных чанков.",
		}),
		ChunkGenSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Name:      "chunk_generation_seconds",
			Help:      "Длительность генерации одного чанка.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		MeshesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "meshes_built_total",
			Help:      "Общее число построенных мешей по видам результата.",
		}, []string{"kind"}),
		MeshBuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Name:      "mesh_build_seconds",
			Help:      "Длительность построения меша одного чанка.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		ChunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "chunks_loaded",
			Help:      "Текущее число чанков в хранилище мира.",
		}),
		ChunksCropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunks_cropped_total",
			Help:      "Общее число чанков, выгруженных при отдалении игрока.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "messages_total",
			Help:      "Общее число сообщений между акторами по тегам.",
		}, []string{"tag"}),
		BlockEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "block_edits_total",
			Help:      "Общее число измененных блоков по видам правки.",
		}, []string{"kind"}),
	}

	prometheus.MustRegister(
		m.ChunksGenerated,
		m.ChunkGenSeconds,
		m.MeshesBuilt,
		m.MeshBuildSeconds,
		m.ChunksLoaded,
		m.ChunksCropped,
		m.Messages,
		m.BlockEdits,
	)
	return m
}

// Serve запускает HTTP-сервер с /metrics в отдельной горутине
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.LogInfo("Метрики доступны на http://%s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.LogError("Сервер метрик: %v", err)
		}
	}()
}
