package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RecordRepository handles content record CRUD operations.
type RecordRepository struct {
	db DB
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create inserts a record, assigning its id when unset and both timestamps.
func (r *RecordRepository) Create(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if len(rec.Data) == 0 {
		rec.Data = []byte("{}")
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `
		INSERT INTO records (id, resource, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Resource, string(rec.Data), rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

// Get retrieves a record of resource by ID.
func (r *RecordRepository) Get(ctx context.Context, resource string, id uuid.UUID) (*Record, error) {
	query := `
		SELECT id, resource, data, created_at, updated_at
		FROM records WHERE id = $1 AND resource = $2
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, resource))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every record of resource, oldest first.
func (r *RecordRepository) List(ctx context.Context, resource string) ([]Record, error) {
	query := `
		SELECT id, resource, data, created_at, updated_at
		FROM records WHERE resource = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, resource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Update replaces the data of a record and bumps updated_at.
func (r *RecordRepository) Update(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE records SET data = $1, updated_at = $2
		WHERE id = $3 AND resource = $4
	`
	res, err := r.db.ExecContext(ctx, query, string(rec.Data), rec.UpdatedAt, rec.ID, rec.Resource)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Delete removes a record and its comments.
func (r *RecordRepository) Delete(ctx context.Context, resource string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1 AND resource = $2`, id, resource)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Count returns the number of records of resource.
func (r *RecordRepository) Count(ctx context.Context, resource string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE resource = $1`, resource).Scan(&n)
	return n, err
}

// SubscriberRepository handles newsletter subscribers.
type SubscriberRepository struct {
	db DB
}

// NewSubscriberRepository creates a new subscriber repository.
func NewSubscriberRepository(db DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Add stores a subscriber. An email that is already subscribed gives
// ErrConflict.
func (r *SubscriberRepository) Add(ctx context.Context, s *Subscriber) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO subscribers (id, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, s.ID, s.Email, s.CreatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrConflict
	}
	return nil
}

// Count returns the number of subscribers.
func (r *SubscriberRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n)
	return n, err
}

// CommentRepository handles record comments.
type CommentRepository struct {
	db DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create stores a comment.
func (r *CommentRepository) Create(ctx context.Context, c *Comment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO comments (id, resource, record_id, autor, contenido, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Resource, c.RecordID, c.Autor, c.Contenido, c.CreatedAt,
	)
	return err
}

// ListByRecord returns the comments of a record, newest first.
func (r *CommentRepository) ListByRecord(ctx context.Context, resource string, recordID uuid.UUID) ([]Comment, error) {
	query := `
		SELECT id, resource, record_id, autor, contenido, created_at
		FROM comments WHERE record_id = $1 AND resource = $2
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.QueryContext(ctx, query, recordID, resource)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Resource, &c.RecordID, &c.Autor, &c.Contenido, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	rec := &Record{}
	var data []byte
	if err := s.Scan(&rec.ID, &rec.Resource, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Data = data
	return rec, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
