package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/response"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Database.SQLite.Path = ":memory:"
	cfg.Files.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestNew_WiresEveryService(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), nil, Options{Migrate: true})
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Content)
	require.NotNil(t, a.Chat)

	turn := a.Chat.Answer("cuántos balones de oro tiene", response.FormatMarkdown)
	assert.Equal(t, "balones_oro", turn.Classification.Intent)

	_, err = a.Content.Create(ctx, "articulos", map[string]any{"titulo": "Hola"})
	require.NoError(t, err)

	docs, err := a.Files.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestNew_SkipDatabase(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), nil, Options{SkipDatabase: true})
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.DB)
	assert.Nil(t, a.Content)
}

func TestNew_BadDatabaseClosesCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "postgres"
	cfg.Database.Postgres.DSN = ""

	_, err := New(context.Background(), cfg, nil, Options{})
	assert.ErrorContains(t, err, "open database")
}
