package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	log = logrus.New()

	envPath string
)

func init() {
	const (
		defaultEnvPath = ".env"
		usage          = "dotenv file path"
	)
	flag.StringVar(&envPath, "env", defaultEnvPath, usage)
	flag.StringVar(&envPath, "e", defaultEnvPath, usage+" (shorthand)")
}

func setupLogging(cfg *config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
		mines.Log.SetLevel(logrus.DebugLevel)
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.Log.File == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.AddHook(hook)
	mines.Log.AddHook(hook)
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := config.Load(envPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}

	setupLogging(cfg)

	log.Info("starting up, development = ", cfg.Development)
	log.WithFields(cfg.Fields()).Debug("config")

	a := app.New(log, cfg)
	if err := a.Start(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
		os.Exit(1)
	}
	log.Info("shut down")
}
