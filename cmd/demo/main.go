package main

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/gocef/cef"
	"github.com/gocef/cef/types"
)

// The engine must be driven from the thread main starts on.
func init() {
	runtime.LockOSThread()
}

// This is a demo opening one window with a browser in it. Set
// CEF_DEMO_CONFIG to a YAML file to override the defaults.
func main() {
	config := types.DefaultConfig()
	if path := os.Getenv("CEF_DEMO_CONFIG"); path != "" {
		var err error
		config, err = types.LoadConfig(path)
		if err != nil {
			panic(err)
		}
	}
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		panic(err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	b, err := cef.Open(config.LibraryPath, cef.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load engine")
	}
	defer b.Close()

	app := &cef.AppHandler{
		OnContextInitialized: func() {
			if err := openWindow(b, config, logger); err != nil {
				logger.Error().Err(err).Msg("could not open window")
				_ = b.QuitMessageLoop()
			}
		},
	}

	// sub-processes run to completion in here
	err = b.ExecuteProcess(os.Args, config.Settings, app)
	var exit types.Exit
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("could not start")
	}

	if err := b.Initialize(os.Args, config.Settings, app); err != nil {
		logger.Fatal().Err(err).Msg("could not initialize")
	}
	logger.Info().Str("engine", b.Version().String()).Str("binding", cef.Version()).Msg("running")
	if err := b.RunMessageLoop(); err != nil {
		logger.Error().Err(err).Msg("message loop")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Int("handles", b.LiveHandles()).Msg("shutdown")
	}
}

func openWindow(b *cef.Binding, config types.Config, logger zerolog.Logger) error {
	client, err := b.NewClient(cef.ClientHandler{
		OnLoadEnd: func(_ *cef.Browser, _ *cef.Frame, status int) {
			logger.Info().Int("status", status).Msg("loaded")
		},
		OnLoadError: func(_ *cef.Browser, _ *cef.Frame, code types.ErrorCode, text, url string) {
			logger.Warn().Int32("code", int32(code)).Str("url", url).Msg(text)
		},
	})
	if err != nil {
		return err
	}
	defer client.Release()

	view, err := b.CreateBrowserView(client, config.StartURL, config.Browser, nil)
	if err != nil {
		return err
	}
	var window *cef.Window
	window, err = b.CreateTopLevelWindow(cef.WindowHandler{
		OnWindowCreated: func(w *cef.Window) {
			err := errors.Join(
				w.SetTitle(config.WindowTitle),
				w.AddChildView(view),
				w.CenterWindow(types.Size{Width: 1024, Height: 768}),
				w.Show(),
			)
			if err != nil {
				logger.Error().Err(err).Msg("could not show window")
			}
		},
		OnWindowDestroyed: func(*cef.Window) {
			view.Release()
			if window != nil {
				window.Release()
			}
			_ = b.QuitMessageLoop()
		},
	})
	if err != nil {
		view.Release()
		return err
	}
	return nil
}
