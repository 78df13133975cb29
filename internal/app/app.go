// Package app wires the TechDivulga services from configuration. The API
// server and the CLI both start from here.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rumiadrian30/techdivulga/internal/cache"
	"github.com/rumiadrian30/techdivulga/internal/chat"
	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/content"
	"github.com/rumiadrian30/techdivulga/internal/files"
	"github.com/rumiadrian30/techdivulga/internal/knowledge"
	"github.com/rumiadrian30/techdivulga/internal/observability"
	"github.com/rumiadrian30/techdivulga/internal/response"
	"github.com/rumiadrian30/techdivulga/internal/storage"
)

// App holds the constructed services.
type App struct {
	Config     *config.Config
	Logger     *observability.Logger
	DB         *sql.DB
	Dialect    storage.Dialect
	Cache      cache.Client
	Knowledge  *knowledge.Base
	Classifier *classifier.Classifier
	Generator  *response.Generator
	Chat       *chat.Service
	Content    *content.Service
	Files      *files.Store
	Index      *files.Index
}

// Options tune what New sets up.
type Options struct {
	// Migrate applies pending migrations on startup.
	Migrate bool
	// SkipDatabase leaves DB and Content nil, for commands that only chat
	// or read documents.
	SkipDatabase bool
}

// New builds every service. On error, whatever was opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *observability.Logger, opts Options) (_ *App, err error) {
	if logger == nil {
		logger = observability.NopLogger()
	}
	a := &App{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.Knowledge, err = knowledge.LoadBase()
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	catalog, err := knowledge.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load intent catalog: %w", err)
	}
	a.Classifier, err = classifier.New(catalog, classifier.Config{ThresholdOverride: cfg.Chat.ConfidenceThreshold})
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}
	a.Generator = response.NewGenerator(a.Knowledge)

	a.Cache, err = cache.New(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	a.Chat = chat.NewService(a.Classifier, a.Generator, a.Cache, chat.Config{
		SessionTTL:      cfg.Chat.SessionTTL,
		AnalysisLogSize: cfg.Chat.AnalysisLogSize,
		VoiceMaxChars:   cfg.Chat.VoiceMaxChars,
	}, logger)
	if err := a.Chat.Analyses().Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to restore analysis log")
	}

	a.Files = files.NewStore(cfg.Files, nil, logger)
	a.Index = files.NewIndex(a.Classifier.Tokenizer(), cfg.Files.ChunkSize, cfg.Files.ChunkOverlap)

	if opts.SkipDatabase {
		return a, nil
	}

	a.DB, a.Dialect, err = storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if opts.Migrate {
		applied, err := storage.NewMigrator(a.DB, a.Dialect).Up(ctx)
		if err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		if len(applied) > 0 {
			logger.Info().Strs("versions", applied).Msg("Migrations applied")
		}
	}
	a.Content = content.NewService(a.DB, a.Cache, cfg.Content, logger)

	logger.Info().
		Str("database", string(a.Dialect)).
		Str("cache", cfg.Cache.Driver).
		Int("intents", len(catalog.Intents)).
		Msg("Services ready")
	return a, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	return errors.Join(errs...)
}
