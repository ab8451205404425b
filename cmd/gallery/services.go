package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"museum-gallery/internal/auth"
	"museum-gallery/internal/config"
	"museum-gallery/internal/i18n"
	"museum-gallery/internal/logger"
	"museum-gallery/internal/museum"
	"museum-gallery/internal/prefs"
)

// services are the collaborators shared by every subcommand.
type services struct {
	cfg     config.Config
	lines   *logger.Logger
	log     *slog.Logger
	auth    *auth.Client
	museum  *museum.Client
	prefs   prefs.Prefs
	printer *i18n.Printer
}

func newServices(verbose bool) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	lines := logger.New(cfg.LogFile)
	var extra io.Writer
	if verbose {
		extra = os.Stderr
	}
	log := logger.NewSlog(lines, logger.ParseLevel(cfg.LogLevel), extra)
	slog.SetDefault(log)

	if err := i18n.Setup(); err != nil {
		log.Warn("label catalogs incomplete", "error", err)
	}
	p := prefs.Load(cfg.PrefsFile)
	lang := p.Lang
	if lang == "" {
		lang = cfg.Lang
	}

	a := auth.NewClient(cfg.AuthURL, cfg.SessionFile, cfg.HTTPTimeout, log)
	m := museum.NewClient(museum.Config{
		APIURL:   cfg.APIURL,
		UsersURL: cfg.AuthURL,
		Timeout:  cfg.HTTPTimeout,
		Tokens:   a,
		Logger:   log,
	})
	return &services{
		cfg:     cfg,
		lines:   lines,
		log:     log,
		auth:    a,
		museum:  m,
		prefs:   p,
		printer: i18n.NewPrinter(lang),
	}, nil
}

// savePrefs persists the current preferences; failures are logged, never fatal.
func (s *services) savePrefs() {
	if err := prefs.Save(s.cfg.PrefsFile, s.prefs); err != nil {
		s.log.Warn("could not save preferences", "path", s.cfg.PrefsFile, "error", err)
	}
}

// requireUser returns the signed-in user or an error telling how to sign in.
func (s *services) requireUser() (auth.User, error) {
	u, ok := s.auth.CurrentUser()
	if !ok {
		return auth.User{}, fmt.Errorf("not signed in: run `gallery login` first")
	}
	return u, nil
}
