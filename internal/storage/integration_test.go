//go:build integration

package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rumiadrian30/techdivulga/internal/config"
)

func TestPostgres_Integration(t *testing.T) {
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("techdivulga_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, dialect, err := Open(ctx, config.DatabaseConfig{
		Driver:   "postgres",
		Postgres: config.PostgresConfig{DSN: dsn, MaxOpenConns: 5},
	})
	require.NoError(t, err)
	defer db.Close()
	require.Equal(t, DialectPostgres, dialect)

	applied, err := NewMigrator(db, dialect).Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init"}, applied)

	records := NewRecordRepository(db)
	rec := &Record{Resource: "articulos", Data: json.RawMessage(`{"titulo":"Postgres","publicado":true}`)}
	require.NoError(t, records.Create(ctx, rec))

	got, err := records.Get(ctx, "articulos", rec.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(rec.Data), string(got.Data))

	comments := NewCommentRepository(db)
	require.NoError(t, comments.Create(ctx, &Comment{Resource: "articulos", RecordID: rec.ID, Autor: "Ana", Contenido: "Bien"}))
	list, err := comments.ListByRecord(ctx, "articulos", rec.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	subs := NewSubscriberRepository(db)
	require.NoError(t, subs.Add(ctx, &Subscriber{Email: "ana@example.com"}))
	assert.ErrorIs(t, subs.Add(ctx, &Subscriber{Email: "ana@example.com"}), ErrConflict)

	require.NoError(t, records.Delete(ctx, "articulos", rec.ID))
	_, err = records.Get(ctx, "articulos", rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
