package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/mattn/go-runewidth"

	"keepnotes/internal/config"
	"keepnotes/internal/logging"
	"keepnotes/internal/markup"
	"keepnotes/internal/notes"
	"keepnotes/internal/store"
	"keepnotes/internal/types"
)

const version = "dev"

// session is everything one command invocation needs: the resolved config,
// the open repository and the Store loaded from it.
type session struct {
	cfg     config.Config
	dataDir string
	repo    store.KV
	state   store.StateStore
	notes   *notes.Store
	logger  logging.Logger
	closers []io.Closer
}

func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func openSession(ctx context.Context, opts globalOptions, ui bool, stderr io.Writer) (*session, error) {
	dataDir := strings.TrimSpace(opts.dataDir)
	if dataDir == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}
	cfg, err := loadConfig(opts, dataDir)
	if err != nil {
		return nil, err
	}
	if backend := strings.TrimSpace(opts.backend); backend != "" {
		cfg.Storage.Backend = backend
	}

	s := &session{cfg: cfg, dataDir: dataDir}
	level := logging.ParseLevel(cfg.LogLevel())
	if opts.verbose {
		level = logging.Debug
	}
	if ui {
		// Logs go to a file so the alt screen stays clean.
		logPath, err := cfg.LogPath(dataDir)
		if err != nil {
			return nil, err
		}
		logger, closer, err := logging.NewFile(logPath, level)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		s.closers = append(s.closers, closer)
	} else {
		s.logger = logging.New(stderr, level)
	}

	storagePath, err := cfg.StoragePath(dataDir)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	repo, err := store.OpenRepository(store.RepositoryPaths{
		DBPath:     storagePath,
		FileDir:    storagePath,
		SQLitePath: storagePath,
	}, cfg.Backend())
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.repo = repo
	s.closers = append(s.closers, repo)
	s.state = store.NewStateStore(repo)
	s.notes = notes.Open(ctx, s.state,
		notes.WithLogger(s.logger),
		notes.WithDefaultTags(cfg.DefaultTags()),
	)
	s.logger.Debug("session_opened",
		logging.F("backend", repo.Backend()),
		logging.F("path", storagePath),
	)
	return s, nil
}

func loadConfig(opts globalOptions, dataDir string) (config.Config, error) {
	if path := strings.TrimSpace(opts.configPath); path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load(dataDir)
}

func printNotes(output io.Writer, list []types.Note) {
	const titleWidth = 40
	fmt.Fprintf(output, "%-8s  %-4s  %-6s  %-16s  %s\n", "ID", "PRIO", "BG", "CREATED", "TITLE / TAGS")
	for _, note := range list {
		title := markup.Label(note.Title)
		if title == "" {
			title = "(untitled)"
		}
		title = runewidth.Truncate(title, titleWidth, "…")
		line := fmt.Sprintf("%-8s  %-4s  %-6s  %-16s  %s",
			markup.Label(note.ID), note.Priority, note.Background,
			note.Created().Format("2006-01-02 15:04"),
			runewidth.FillRight(title, titleWidth),
		)
		for _, tag := range note.Tags {
			line += "  #" + markup.Label(tag)
		}
		fmt.Fprintln(output, strings.TrimRight(line, " "))
	}
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}
	return version
}
