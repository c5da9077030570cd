package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhle/loan-checklist/internal/catalog"
	"github.com/nhle/loan-checklist/internal/checklist"
	"github.com/nhle/loan-checklist/internal/credential"
	"github.com/nhle/loan-checklist/internal/filestore"
	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/notify"
	"github.com/nhle/loan-checklist/internal/store"
)

// app bundles the services a command needs.
type app struct {
	store    *store.SQLiteStore
	engine   *checklist.Engine
	notifier *notify.StoreNotifier
	logger   *slog.Logger
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newApp wires the store, catalog and delivery collaborators from cfg.
// Storage and email are optional; they stay disabled until configured.
func newApp(cfg *model.AppConfig, session checklist.Session, extra ...checklist.Option) (*app, error) {
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if cfg.Templates.Path != "" {
		if cat, err = catalog.LoadFile(cfg.Templates.Path); err != nil {
			s.Close()
			return nil, err
		}
	}

	notifier := notify.NewStoreNotifier(s)
	opts := []checklist.Option{
		checklist.WithLogger(logger),
		checklist.WithNotifier(notifier),
		checklist.WithBaseURL(cfg.App.BaseURL),
	}

	var secrets *credential.Store
	if cfg.Storage.Bucket != "" || cfg.SMTP.Host != "" {
		secrets = openSecrets(logger)
	}

	if cfg.Storage.Bucket != "" {
		fs, err := filestore.NewS3Storage(filestore.Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			PublicURL: cfg.Storage.PublicURL,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: secret(secrets, credential.KeyStorageSecretKey, logger),
			Prefix:    "checklist",
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		opts = append(opts, checklist.WithFileStorage(fs))
	} else {
		logger.Warn("storage.bucket not set, file uploads disabled")
	}

	if cfg.SMTP.Host != "" {
		opts = append(opts, checklist.WithMailer(notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: secret(secrets, credential.KeySMTPPassword, logger),
			From:     cfg.SMTP.From,
			TLS:      cfg.SMTP.TLS,
		}, logger)))
	} else {
		logger.Warn("smtp.host not set, borrower emails disabled")
	}

	engine := checklist.New(s, cat, session, append(opts, extra...)...)
	return &app{store: s, engine: engine, notifier: notifier, logger: logger}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func openSecrets(logger *slog.Logger) *credential.Store {
	secrets, err := credential.Open()
	if err != nil {
		logger.Warn("keyring unavailable", "error", err)
		return nil
	}
	return secrets
}

func secret(secrets *credential.Store, key string, logger *slog.Logger) string {
	if secrets == nil {
		return ""
	}
	v, err := secrets.Lookup(key)
	if err != nil {
		logger.Warn("reading credential failed", "key", key, "error", err)
	}
	return v
}
