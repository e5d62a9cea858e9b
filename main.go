package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/lyricsync/internal/app"
	"github.com/llehouerou/lyricsync/internal/config"
	"github.com/llehouerou/lyricsync/internal/errmsg"
	"github.com/llehouerou/lyricsync/internal/icons"
	"github.com/llehouerou/lyricsync/internal/logging"
	"github.com/llehouerou/lyricsync/internal/lyrics"
	"github.com/llehouerou/lyricsync/internal/mpris"
	"github.com/llehouerou/lyricsync/internal/notify"
	"github.com/llehouerou/lyricsync/internal/snapshot"
	"github.com/llehouerou/lyricsync/internal/state"
	"github.com/llehouerou/lyricsync/internal/stderr"
	"github.com/llehouerou/lyricsync/internal/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	icons.Init(cfg.Icons)

	logger, logFile, err := logging.Open(cfg.LogLevel)
	if err != nil {
		// the TUI owns the terminal, so logs go nowhere rather than to stderr
		logger, logFile = zerolog.Nop(), io.NopCloser(nil)
	}
	defer logFile.Close()

	stateMgr, err := state.Open()
	if err != nil {
		return err
	}
	defer stateMgr.Close()

	store, err := snapshot.NewStore(cfg.SnapshotDir)
	if err != nil {
		return err
	}

	downloader, err := newDownloader(cfg, logger)
	if err != nil {
		return err
	}

	notifier, err := notify.New()
	if err != nil {
		return err
	}

	clock := transport.New()
	var media app.MediaSession
	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(clock, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("mpris disabled")
		} else {
			defer adapter.Close()
			media = adapter
		}
	}

	m := app.New(app.Deps{
		Config:     cfg,
		State:      stateMgr,
		Snapshots:  store,
		Downloader: downloader,
		Clock:      clock,
		Logger:     logger,
		Notifier:   notifier,
		Media:      media,
	})
	logger.Info().Strs("providers", cfg.ProviderNames()).Msg("starting")

	capture, err := stderr.Start(func(line string) {
		logger.Warn().Str("stderr", line).Msg("captured output")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("stderr not captured")
	} else {
		defer capture.Stop()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func newDownloader(cfg *config.Config, logger zerolog.Logger) (*lyrics.Downloader, error) {
	dl := cfg.GetDownloadConfig()
	pc := lyrics.ProviderConfig{
		NeteaseCookie: cfg.Netease.Cookie,
		Timeout:       dl.Timeout(),
	}
	var providers []lyrics.Provider
	for _, name := range cfg.ProviderNames() {
		p, err := lyrics.NewProvider(name, pc)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return lyrics.NewDownloader(providers,
		lyrics.WithLimit(dl.SearchLimit),
		lyrics.WithTimeout(dl.Timeout()),
		lyrics.WithLogger(logger),
	), nil
}
