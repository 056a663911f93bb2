package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/wavelist/internal/app"
	"github.com/llehouerou/wavelist/internal/config"
	"github.com/llehouerou/wavelist/internal/errmsg"
	"github.com/llehouerou/wavelist/internal/history"
	"github.com/llehouerou/wavelist/internal/logging"
	"github.com/llehouerou/wavelist/internal/notify"
	"github.com/llehouerou/wavelist/internal/playback"
	"github.com/llehouerou/wavelist/internal/player"
	"github.com/llehouerou/wavelist/internal/playlist"
	"github.com/llehouerou/wavelist/internal/stderr"
	"github.com/llehouerou/wavelist/internal/tags"
)

func main() {
	cmd := &cli.Command{
		Name:  "wavelist",
		Usage: "Play a bundled playlist in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to a configuration file"},
			&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: "Playlist manifest (default: bundled)"},
			&cli.StringFlag{Name: "media-dir", Aliases: []string{"d"}, Usage: "Directory holding the media files"},
			&cli.StringFlag{Name: "log-file", Usage: "Log file path"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: "no-history", Usage: "Do not record or show play history"},
			&cli.BoolFlag{Name: "notify", Usage: "Show a desktop notification on track change"},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the resolved playlist and exit",
				Action: list,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if v := cmd.String("manifest"); v != "" {
		cfg.Manifest = v
	}
	if v := cmd.String("media-dir"); v != "" {
		cfg.MediaDir = v
	}
	if v := cmd.String("log-file"); v != "" {
		cfg.Log.File = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if cmd.Bool("no-history") {
		disabled := false
		cfg.History.Enabled = &disabled
	}
	if cmd.Bool("notify") {
		cfg.Notify.Enabled = true
	}
	cfg.Normalize()
	return cfg, nil
}

func loadManifest(cfg *config.Config) (playlist.Manifest, error) {
	if cfg.Manifest == "" {
		return playlist.DefaultManifest(), nil
	}
	m, err := playlist.ReadManifest(cfg.Manifest)
	if err != nil {
		return playlist.Manifest{}, errors.New(errmsg.FormatWith(errmsg.OpManifestLoad, cfg.Manifest, err))
	}
	return m, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logPath, err := cfg.LogFile()
	if err != nil {
		return err
	}
	logger, logFile, err := logging.OpenFile(logPath, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	manifest, err := loadManifest(cfg)
	if err != nil {
		logger.Error("manifest", "err", err)
		return err
	}

	capture, err := stderr.Start()
	if err != nil {
		logger.Warn("stderr capture disabled", "err", err)
	}
	defer capture.Stop()

	svc := playback.New(player.New(), logger.With("component", "playback"))
	defer svc.Close()

	var hist *history.Manager
	if cfg.HistoryEnabled() {
		hist, err = history.Open(cfg.History.Path, logger.With("component", "history"))
		if err != nil {
			// history is optional; keep playing without it
			logger.Warn(errmsg.Format(errmsg.OpHistoryOpen, err), "path", cfg.History.Path)
			hist = nil
		} else {
			defer hist.Close()
		}
	}

	var notifications notify.Sender
	if cfg.Notify.Enabled {
		notifications = notify.New()
	}

	settings := cfg.PlayerSettings()
	model, err := app.New(ctx, app.Deps{
		Player:            svc,
		Manifest:          manifest,
		Resolver:          playlist.NewDirResolver(cfg.MediaDir),
		LoadOptions:       []playlist.Option{playlist.WithTagFallback(tags.Read)},
		History:           hist,
		Notifications:     notifications,
		Stderr:            capture.Lines(),
		AffordanceHeight:  settings.AffordanceHeight,
		AnimationDuration: settings.AnimationDuration(),
		Logger:            logger,
	})
	if err != nil {
		return startupFailure(logger, capture, err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Shutdown()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// startupFailure logs a fatal initialization error and reports it on the
// terminal. A missing media resource means the install is broken.
func startupFailure(logger *log.Logger, capture *stderr.Capture, err error) error {
	var missing *playlist.MissingResourceError
	if errors.As(err, &missing) {
		logger.Error("missing media resource", "resource", missing.Name, "err", err)
	} else {
		logger.Error("initialize", "err", err)
	}
	capture.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
	return cli.Exit("", 1)
}

func list(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manifest, err := loadManifest(cfg)
	if err != nil {
		return err
	}
	store, err := playlist.Load(manifest, playlist.NewDirResolver(cfg.MediaDir), playlist.WithTagFallback(tags.Read))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaylistLoad, err))
	}

	t := table.New().Headers("#", "Track", "Artist", "Album", "Source")
	for i, it := range store.Items() {
		t.Row(fmt.Sprint(i+1), it.Track(), it.Artist(), it.Album(), it.Source())
	}
	fmt.Println(t.Render())
	return nil
}
