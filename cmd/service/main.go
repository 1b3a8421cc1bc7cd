package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/treinoapp/backend/internal"
	"github.com/treinoapp/backend/internal/config"
	"github.com/treinoapp/backend/internal/logging"
	"github.com/treinoapp/backend/pkg"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	syncCatalogOnStart := flag.Bool("sync-catalog", false, "run an exercise catalog sync on startup")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "treino-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	catalogAPIKey := os.Getenv("TREINO_CATALOG_API_KEY")
	if catalogAPIKey == "" {
		log.Errorf("exercise catalog API key not set, use TREINO_CATALOG_API_KEY env var to set it")
	}
	catalogAPIHost := os.Getenv("TREINO_CATALOG_API_HOST")
	if catalogAPIHost == "" {
		log.Errorf("exercise catalog API host not set, use TREINO_CATALOG_API_HOST env var to set it")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	redisPassword := os.Getenv("TREINO_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use TREINO_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:         cfg,
			CatalogAPIKey:  catalogAPIKey,
			CatalogAPIHost: catalogAPIHost,
			RedisPassword:  redisPassword,
			VersionInfo:    versionInfo,
			TracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	catalogCron := cron.New()
	if cfg.CatalogSyncSchedule != "" {
		if err := catalogCron.AddFunc(cfg.CatalogSyncSchedule, func() {
			server.SyncExercisesCatalog(ctx)
		}); err != nil {
			log.Fatalf("schedule catalog sync: %s", err)
		}
		if err := catalogCron.AddFunc("@weekly", func() {
			server.RefreshExercisesCatalog(ctx)
		}); err != nil {
			log.Fatalf("schedule catalog refresh: %s", err)
		}
		catalogCron.Start()
	} else {
		log.Warnln("catalog sync schedule not set, catalog sync disabled")
	}

	if *syncCatalogOnStart {
		go server.SyncExercisesCatalog(ctx)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	catalogCron.Stop()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
