package main

import (
	"os"

	"github.com/budgetwise-dev/budgetwise/internal/commands"
	"github.com/budgetwise-dev/budgetwise/internal/config"
	"github.com/budgetwise-dev/budgetwise/internal/logging"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logging.Logger.WithError(err).Warn("dotenv load failed")
	}
	logging.Init()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
