package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/ytget/parcours/internal/config"
	"github.com/ytget/parcours/internal/export"
	"github.com/ytget/parcours/internal/generate"
	"github.com/ytget/parcours/internal/logging"
	"github.com/ytget/parcours/internal/platform"
	"github.com/ytget/parcours/internal/tiles"
	"github.com/ytget/parcours/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.parcours"
	AppName = "Parcours"

	WindowWidth  = 1100
	WindowHeight = 720
)

func main() {
	configPath := flag.String("config", "", "YAML file with default settings")
	logLevel := flag.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flag.Parse()

	myApp := app.NewWithID(AppID)
	settings := config.NewSettings(myApp)

	if *configPath != "" {
		file, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parcours: %v\n", err)
			os.Exit(2)
		}
		settings.ApplyFile(file)
	}

	level := settings.GetLogLevel()
	if *logLevel != "" {
		level = *logLevel
	}
	log := logging.New(level)
	log.Info().Str("version", version).Msg("Parcours starting")

	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Warn().Err(err).Str("dir", downloadsDir).Msg("failed to ensure downloads dir")
	}

	userAgent := fmt.Sprintf("parcours/%s", version)
	generator := generate.NewService(settings.GetAPIBaseURL(), userAgent, log)
	exporter := export.NewService(downloadsDir, log)
	tileSource := tiles.NewSource(settings.GetTileURLTemplate(), userAgent, log)

	go probeService(generator, log)

	ui.NewRootUI(myWindow, myApp, settings, ui.Services{
		Generator: generator,
		Exporter:  exporter,
		Tiles:     tileSource,
		Log:       log,
	})

	myWindow.ShowAndRun()
}

// probeService logs whether the generation service answers its health check
func probeService(generator *generate.Service, log zerolog.Logger) {
	if err := generator.Health(context.Background()); err != nil {
		log.Warn().Err(err).Str("api_base_url", generator.BaseURL()).Msg("route service unreachable")
		return
	}
	log.Info().Str("api_base_url", generator.BaseURL()).Msg("route service healthy")
}
