// Package content implements the content API of the site: CRUD over the
// articulos, tutoriales, herramientas and noticias resources, cross-resource
// search, featured listings, totals, newsletter subscriptions and comments.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rumiadrian30/techdivulga/internal/cache"
	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/observability"
	"github.com/rumiadrian30/techdivulga/internal/storage"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrNotFound        = storage.ErrNotFound
)

// Resource names a content table.
type Resource string

const (
	Articulos    Resource = "articulos"
	Tutoriales   Resource = "tutoriales"
	Herramientas Resource = "herramientas"
	Noticias     Resource = "noticias"
)

// Resources lists every content table in display order.
var Resources = []Resource{Articulos, Tutoriales, Herramientas, Noticias}

// ParseResource validates a resource name.
func ParseResource(name string) (Resource, error) {
	r := Resource(name)
	if !slices.Contains(Resources, r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	return r, nil
}

// DefaultSort is the order the typed listings use: newest first for dated
// resources, best rated first for the others.
func (r Resource) DefaultSort() string {
	switch r {
	case Tutoriales, Herramientas:
		return "-valoracion"
	default:
		return "-fecha_publicacion"
	}
}

// ListOptions selects a page of a resource.
type ListOptions struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
	// Sort names a field; a leading '-' sorts descending.
	Sort string `json:"sort"`
}

// Page is one page of a listing.
type Page struct {
	Data  []Item `json:"data"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Table string `json:"table"`
}

// Service serves content from SQL storage.
type Service struct {
	records     *storage.RecordRepository
	subscribers *storage.SubscriberRepository
	comments    *storage.CommentRepository
	cache       cache.Client
	cfg         config.ContentConfig
	logger      *observability.Logger

	// StatsTTL is how long totals stay cached.
	StatsTTL time.Duration
}

// NewService creates a content service. store may be nil to disable
// caching of the totals.
func NewService(db storage.DB, store cache.Client, cfg config.ContentConfig, logger *observability.Logger) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 100
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = max(1000, cfg.DefaultLimit)
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 5
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		records:     storage.NewRecordRepository(db),
		subscribers: storage.NewSubscriberRepository(db),
		comments:    storage.NewCommentRepository(db),
		cache:       store,
		cfg:         cfg,
		logger:      logger.WithComponent("content"),
		StatsTTL:    time.Minute,
	}
}

// List returns a page of resource. page defaults to 1 and limit to the
// configured default, capped at the configured maximum.
func (s *Service) List(ctx context.Context, resource string, opts ListOptions) (*Page, error) {
	return s.list(ctx, resource, opts, nil)
}

func (s *Service) list(ctx context.Context, resource string, opts ListOptions, keep func(Item) bool) (*Page, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	opts = s.normalize(opts)

	records, err := s.records.List(ctx, string(r))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r, err)
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		if search != "" && !strings.Contains(strings.ToLower(string(rec.Data)), search) {
			continue
		}
		it, err := decode(rec)
		if err != nil {
			s.logger.Warn().Err(err).Str("id", rec.ID.String()).Msg("Skipping undecodable record")
			continue
		}
		if keep != nil && !keep(it) {
			continue
		}
		items = append(items, it)
	}
	sortItems(items, opts.Sort)

	total := len(items)
	start := total
	// compare before multiplying so huge page numbers cannot overflow
	if opts.Page-1 < (total+opts.Limit-1)/opts.Limit {
		start = (opts.Page - 1) * opts.Limit
	}
	end := min(start+opts.Limit, total)
	return &Page{
		Data:  items[start:end],
		Total: total,
		Page:  opts.Page,
		Limit: opts.Limit,
		Table: string(r),
	}, nil
}

func (s *Service) normalize(opts ListOptions) ListOptions {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = s.cfg.DefaultLimit
	}
	opts.Limit = min(opts.Limit, s.cfg.MaxLimit)
	return opts
}

// Get returns one item. Ids that are not UUIDs are reported as not found.
func (s *Service) Get(ctx context.Context, resource, id string) (Item, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	rec, err := s.get(ctx, r, id)
	if err != nil {
		return nil, err
	}
	return decode(*rec)
}

func (s *Service) get(ctx context.Context, r Resource, id string) (*storage.Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.records.Get(ctx, string(r), uid)
}

// Create stores a new item built from fields. Reserved fields in the body
// are ignored.
func (s *Service) Create(ctx context.Context, resource string, fields map[string]any) (Item, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRecord)
	}
	fields = withoutReserved(fields)

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rec := &storage.Record{Resource: string(r), Data: data}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create %s: %w", r, err)
	}
	s.invalidateStats(ctx)

	s.logger.Info().Str("resource", string(r)).Str("id", rec.ID.String()).Msg("Content created")
	return newItem(*rec, fields), nil
}

// Update replaces every field of an item.
func (s *Service) Update(ctx context.Context, resource, id string, fields map[string]any) (Item, error) {
	return s.save(ctx, resource, id, fields, false)
}

// Patch merges fields into an item, keeping the fields it does not name.
func (s *Service) Patch(ctx context.Context, resource, id string, fields map[string]any) (Item, error) {
	return s.save(ctx, resource, id, fields, true)
}

func (s *Service) save(ctx context.Context, resource, id string, fields map[string]any, merge bool) (Item, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRecord)
	}
	rec, err := s.get(ctx, r, id)
	if err != nil {
		return nil, err
	}

	next := withoutReserved(fields)
	if merge {
		current, err := decodeFields(rec.Data)
		if err != nil {
			return nil, err
		}
		for k, v := range next {
			current[k] = v
		}
		next = current
	}

	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rec.Data = data
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return newItem(*rec, next), nil
}

// Delete removes an item and its comments.
func (s *Service) Delete(ctx context.Context, resource, id string) error {
	r, err := ParseResource(resource)
	if err != nil {
		return err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.records.Delete(ctx, string(r), uid); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func decode(rec storage.Record) (Item, error) {
	fields, err := decodeFields(rec.Data)
	if err != nil {
		return nil, err
	}
	return newItem(rec, fields), nil
}

func decodeFields(data []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(data) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func withoutReserved(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if !slices.Contains(reserved, k) {
			out[k] = v
		}
	}
	return out
}

// sortItems orders items by key ("field" or "-field"). Items lacking the
// field stay last in both directions; ties keep storage order.
func sortItems(items []Item, order string) {
	key, desc := strings.CutPrefix(strings.TrimSpace(order), "-")
	if key == "" {
		return
	}
	slices.SortStableFunc(items, func(a, b Item) int {
		_, aok := a[key]
		_, bok := b[key]
		if aok != bok {
			return compareField(a, b, key)
		}
		c := compareField(a, b, key)
		if desc {
			return -c
		}
		return c
	})
}
