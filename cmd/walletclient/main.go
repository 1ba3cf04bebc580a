package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arunkumar231105/digital-wallet-client/internal/api"
	"github.com/arunkumar231105/digital-wallet-client/internal/config"
	"github.com/arunkumar231105/digital-wallet-client/internal/session"
	"github.com/arunkumar231105/digital-wallet-client/internal/ui"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	sessions, err := session.NewFileStore(cfg.SessionFile)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	client := api.New(cfg.APIBaseURL, sessions)

	err = ui.Run(ui.Deps{
		Sessions:    sessions,
		Client:      client,
		IdleTimeout: cfg.IdleTimeout,
		Log:         logger,
	})
	if err != nil {
		log.Fatalf("run ui: %v", err)
	}
}

// newLogger writes to the configured file. The TUI owns the terminal, so
// without a file the logger is a no-op.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
