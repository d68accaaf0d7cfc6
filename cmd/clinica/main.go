package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinica/internal/cli"
	"github.com/jwalitptl/clinica/internal/config"
	"github.com/jwalitptl/clinica/internal/service/audit"
	"github.com/jwalitptl/clinica/internal/service/clinic"
	"github.com/jwalitptl/clinica/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: cfg.Log.TimeFormat,
		Output:     os.Stderr,
	})

	auditor := audit.NewService(cfg.Audit.MaxEntries)
	clinicSvc := clinic.NewService(auditor, appLogger)

	app := cli.New(clinicSvc, os.Stdin, os.Stdout, appLogger)
	if err := app.Run(context.Background()); err != nil {
		appLogger.Fatal(err, "clinic session failed")
	}
}
