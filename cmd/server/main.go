package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lilllllly06/TemporalMaze/internal/domain"
	"github.com/Lilllllly06/TemporalMaze/internal/engine"
	"github.com/Lilllllly06/TemporalMaze/internal/server"
	"github.com/Lilllllly06/TemporalMaze/internal/version"
	"github.com/Lilllllly06/TemporalMaze/pkg/levelpack"
	"github.com/Lilllllly06/TemporalMaze/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Конфигурация: окружение + флаги (флаг сильнее окружения)
	var levelDir string
	var addr string
	flag.StringVar(&levelDir, "levels", "", "Directory with TOML level files (empty = builtin campaign)")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides TM_ADDR)")
	flag.Parse()

	logger.Log.Info("Starting TemporalMaze...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	if levelDir != "" {
		cfg.LevelDir = levelDir
	}
	if addr != "" {
		cfg.Addr = addr
	}

	// 2. Загрузка уровней
	var levels []*domain.LevelData
	if cfg.LevelDir != "" {
		logger.Log.Infof("📂 Loading levels from %s", cfg.LevelDir)
		levels, err = levelpack.LoadDir(cfg.LevelDir)
	} else {
		logger.Log.Info("📦 Using builtin campaign")
		levels, err = engine.BuiltinLevels()
	}
	if err != nil {
		logger.Log.Fatal("Level load error: ", err)
	}

	// Валидируем весь набор на старте: кривой уровень должен валить запуск,
	// а не первую сессию, которая до него дойдет.
	for i, ld := range levels {
		if _, err := ld.BuildWorld(); err != nil {
			logger.Log.Fatalf("Level %d (%s) is broken: %v", i+1, ld.Name, err)
		}
	}
	logger.Log.Infof("Loaded %d level(s)", len(levels))

	// 3. Инициализация ядра и сервера
	gameService := engine.NewService(cfg, levels)
	srv := server.New(gameService, cfg.Addr)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("Shutdown was not clean")
	}

	logger.Log.Info("Done.")
}
