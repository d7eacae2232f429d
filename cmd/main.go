// Package main runs a desktop front-end that packages a Python script into a standalone
// executable with PyInstaller, using the Fyne framework.
package main

import (
	"context"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"

	"github.com/Akaiko1/script-packager/internal/config"
	"github.com/Akaiko1/script-packager/internal/logger"
	"github.com/Akaiko1/script-packager/internal/packager"
	"github.com/Akaiko1/script-packager/internal/runner"
	"github.com/Akaiko1/script-packager/internal/ui"
)

func main() {
	log := logger.NewConsole(zerolog.DebugLevel)
	log.Info().Msg("Starting script packager...")

	cfg, err := config.DefaultConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}
	log.Info().Str("output_dir", cfg.OutputDir).Str("python", cfg.Python).Msg("Config loaded")

	invoker := packager.NewInvoker(cfg, runner.ExecRunner{}, logger.Component(log, "packager"))

	fyneApp := app.New()
	fyneApp.SetIcon(theme.ComputerIcon())
	builderApp := ui.NewBuilderApp(fyneApp, cfg, invoker, logger.Component(log, "ui"))

	if err := invoker.CheckInstalled(context.Background()); err != nil {
		log.Error().Err(err).Msg("startup check failed")
		builderApp.RunFatal(err)
		os.Exit(1)
	}

	log.Info().Msg("App created, starting UI...")
	builderApp.Run()
}
