package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rumiadrian30/techdivulga/internal/cache"
	"github.com/rumiadrian30/techdivulga/internal/storage"
)

// SubscribedMessage is returned for every accepted newsletter subscription.
const SubscribedMessage = "Suscripción exitosa"

// Published lists a resource keeping only published items, sorted by the
// resource default unless opts names a sort.
func (s *Service) Published(ctx context.Context, r Resource, opts ListOptions) (*Page, error) {
	if opts.Sort == "" {
		opts.Sort = r.DefaultSort()
	}
	return s.list(ctx, string(r), opts, Item.Published)
}

// Articulos lists published articles, newest first.
func (s *Service) Articulos(ctx context.Context, opts ListOptions) (*Page, error) {
	return s.Published(ctx, Articulos, opts)
}

// Tutoriales lists published tutorials, best rated first.
func (s *Service) Tutoriales(ctx context.Context, opts ListOptions) (*Page, error) {
	return s.Published(ctx, Tutoriales, opts)
}

// Herramientas lists published tools, best rated first.
func (s *Service) Herramientas(ctx context.Context, opts ListOptions) (*Page, error) {
	return s.Published(ctx, Herramientas, opts)
}

// Noticias lists published news, newest first.
func (s *Service) Noticias(ctx context.Context, opts ListOptions) (*Page, error) {
	return s.Published(ctx, Noticias, opts)
}

// Search looks for query in the published items of each resource, at most
// SearchLimit per resource. A resource that fails to load contributes an
// empty list. An empty types slice searches every resource.
func (s *Service) Search(ctx context.Context, query string, types []Resource) map[Resource][]Item {
	if len(types) == 0 {
		types = Resources
	}

	var mu sync.Mutex
	results := make(map[Resource][]Item, len(types))
	var g errgroup.Group
	for _, r := range types {
		g.Go(func() error {
			page, err := s.list(ctx, string(r), ListOptions{Search: query, Limit: s.cfg.SearchLimit}, Item.Published)
			items := []Item{}
			if err != nil {
				s.logger.Warn().Err(err).Str("resource", string(r)).Msg("Content search failed")
			} else {
				items = page.Data
			}
			mu.Lock()
			results[r] = items
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Featured is the home page selection.
type Featured struct {
	Articulos    []Item `json:"articulos"`
	Tutoriales   []Item `json:"tutoriales"`
	Herramientas []Item `json:"herramientas"`
	Noticias     []Item `json:"noticias"`
}

// Featured loads the latest articles (6), best tutorials (6), best tools
// (8) and latest news (6) concurrently. Any failure fails the whole call.
func (s *Service) Featured(ctx context.Context) (*Featured, error) {
	out := &Featured{}
	g, gctx := errgroup.WithContext(ctx)

	load := func(r Resource, limit int, dst *[]Item) {
		g.Go(func() error {
			page, err := s.Published(gctx, r, ListOptions{Limit: limit})
			if err != nil {
				return err
			}
			*dst = page.Data
			return nil
		})
	}
	load(Articulos, 6, &out.Articulos)
	load(Tutoriales, 6, &out.Tutoriales)
	load(Herramientas, 8, &out.Herramientas)
	load(Noticias, 6, &out.Noticias)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("featured content: %w", err)
	}
	return out, nil
}

// Stats holds the number of items per resource.
type Stats struct {
	TotalArticulos    int `json:"totalArticulos"`
	TotalTutoriales   int `json:"totalTutoriales"`
	TotalHerramientas int `json:"totalHerramientas"`
	TotalNoticias     int `json:"totalNoticias"`
}

// Stats returns the totals, served from the cache when fresh. Storage
// failures give zeros.
func (s *Service) Stats(ctx context.Context) Stats {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cache.ContentStatsKey()); err == nil {
			var st Stats
			if json.Unmarshal(data, &st) == nil {
				return st
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("Failed to read cached content stats")
		}
	}

	var st Stats
	g, gctx := errgroup.WithContext(ctx)
	count := func(r Resource, dst *int) {
		g.Go(func() error {
			n, err := s.records.Count(gctx, string(r))
			*dst = n
			return err
		})
	}
	count(Articulos, &st.TotalArticulos)
	count(Tutoriales, &st.TotalTutoriales)
	count(Herramientas, &st.TotalHerramientas)
	count(Noticias, &st.TotalNoticias)

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to count content")
		return Stats{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(st); err == nil {
			if err := s.cache.Set(ctx, cache.ContentStatsKey(), data, s.StatsTTL); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to cache content stats")
			}
		}
	}
	return st
}

// invalidateStats drops every cached aggregate after a write.
func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, cache.ContentPrefix()); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to invalidate content stats")
	}
}

// Subscribe adds email to the newsletter. Subscribing twice is not an
// error.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	addr, err := ValidateEmail(email)
	if err != nil {
		return err
	}
	err = s.subscribers.Add(ctx, &storage.Subscriber{Email: addr})
	if errors.Is(err, storage.ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	s.logger.Info().Msg("Newsletter subscription added")
	return nil
}

// ValidateEmail checks that email is a bare address with a dotted domain
// and returns it lower-cased.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	at := strings.LastIndexByte(email, '@')
	if domain := email[at+1:]; !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return strings.ToLower(email), nil
}

// CommentInput is a new comment.
type CommentInput struct {
	Autor     string `json:"autor"`
	Contenido string `json:"contenido"`
}

// AddComment attaches a comment to an existing item.
func (s *Service) AddComment(ctx context.Context, resource, id string, in CommentInput) (*storage.Comment, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	in.Autor = strings.TrimSpace(in.Autor)
	in.Contenido = strings.TrimSpace(in.Contenido)
	if in.Autor == "" || in.Contenido == "" {
		return nil, fmt.Errorf("%w: autor and contenido are required", ErrInvalidRecord)
	}
	rec, err := s.get(ctx, r, id)
	if err != nil {
		return nil, err
	}

	c := &storage.Comment{Resource: string(r), RecordID: rec.ID, Autor: in.Autor, Contenido: in.Contenido}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return c, nil
}

// Comments returns the comments of an item, newest first.
func (s *Service) Comments(ctx context.Context, resource, id string) ([]storage.Comment, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	rec, err := s.get(ctx, r, id)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByRecord(ctx, string(r), rec.ID)
}
