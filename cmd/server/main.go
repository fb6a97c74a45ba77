package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/voxel-sim/internal/config"
	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/annel0/voxel-sim/internal/metrics"
	"github.com/annel0/voxel-sim/internal/protocol"
	"github.com/annel0/voxel-sim/internal/protocol/replay"
	"github.com/annel0/voxel-sim/internal/sim"
	"github.com/annel0/voxel-sim/internal/stats"
	"github.com/annel0/voxel-sim/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitLogger(); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.LogInfo("🌍 Запуск сервера воксельной симуляции...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.LogError("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	seed := cfg.World.GetSeed()
	opts := sim.Options{
		ViewDistance: cfg.World.GetViewDistance(),
		WorldHeight:  cfg.World.GetHeight(),
		Generators:   cfg.World.GetGenerators(),
	}
	logging.LogInfo("📡 Конфигурация: сид=%d, видимость=%d, высота=%d чанков",
		seed, opts.ViewDistance, opts.WorldHeight)

	// === МЕТРИКИ ===
	metrics.Serve(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))

	// === ЖУРНАЛ СООБЩЕНИЙ ===
	var recorder *replay.Recorder
	if path := cfg.Server.GetReplayPath(); path != "" {
		recorder, err = replay.NewRecorder(path)
		if err != nil {
			logging.LogError("❌ Ошибка открытия журнала сообщений: %v", err)
			log.Fatalf("❌ Ошибка открытия журнала сообщений: %v", err)
		}
		logging.LogInfo("📼 Журнал сообщений пишется в %s", path)
	}

	// === АКТОРЫ ===
	// Корневой актор — рендерер; симуляция — его ребенок, генераторы —
	// дети симуляции
	pool := worker.NewPool(recorder)
	statistics := stats.New()

	renderer := pool.Spawn(sim.NewRendererDispatcher(opts, sim.NewRendererState(statistics)))
	simulation := pool.SpawnWithParent(renderer, sim.NewDispatcher(opts))
	pool.Send(renderer, simulation, protocol.InitSimulation{Seed: seed}.Encode())

	logging.LogInfo("✅ Симуляция запущена")

	// Ожидаем сигнала завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logging.LogInfo("🛑 Остановка сервера...")
	pool.Shutdown()
	logging.LogInfo("Сервер остановлен")
}
