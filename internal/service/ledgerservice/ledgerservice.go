package ledgerservice

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/feed"
)

// PageSize is fixed, matching the admin table view.
const PageSize = 10

type Repo interface {
	GetAll(ctx context.Context) ([]domain.PointsRecord, error)
}

type Page struct {
	Records      []domain.PointsRecord
	Page         int
	TotalPages   int
	TotalRecords int
}

// Service owns the in-memory copy of the points table. The store stays
// the source of truth: the cache is loaded on first use, fully
// reloadable, and patched from the change feed so concurrent editors
// stay visible without a reload. Patches are serialized behind the
// mutex, so a stale write response can never overwrite a newer patch.
type Service struct {
	pointsRepo Repo

	mu     sync.RWMutex
	cache  []domain.PointsRecord
	loaded bool
}

func New(pointsRepo Repo) *Service {
	return &Service{pointsRepo: pointsRepo}
}

// Start consumes change events until ctx is done.
func (s *Service) Start(ctx context.Context, events <-chan feed.Event) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				s.applyEvent(event)
			}
		}
	}()
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Reload replaces the cache with the full table contents.
func (s *Service) Reload(ctx context.Context) error {
	records, err := s.pointsRepo.GetAll(ctx)
	if err != nil {
		zap.L().Error("failed to load points ledger", zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.cache = records
	s.loaded = true
	s.mu.Unlock()
	zap.L().Debug("points ledger loaded", zap.Int("records", len(records)))
	return nil
}

// applyEvent patches the cache by customer-code match, last writer wins.
func (s *Service) applyEvent(event feed.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}

	switch event.Type {
	case feed.EventDelete:
		if event.Old == nil {
			return
		}
		for i, rec := range s.cache {
			if rec.CustomerCode == event.Old.CustomerCode {
				s.cache = append(s.cache[:i], s.cache[i+1:]...)
				return
			}
		}
	case feed.EventInsert, feed.EventUpdate:
		if event.New == nil {
			return
		}
		for i, rec := range s.cache {
			if rec.CustomerCode == event.New.CustomerCode {
				s.cache[i] = *event.New
				return
			}
		}
		s.cache = append(s.cache, *event.New)
	}
}

// Snapshot returns the filtered, sorted record set without pagination.
func (s *Service) Snapshot(ctx context.Context, filter FilterSpec) ([]domain.PointsRecord, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records := make([]domain.PointsRecord, len(s.cache))
	copy(records, s.cache)
	s.mu.RUnlock()

	filtered := applyFilter(records, &filter)
	sortRecords(filtered, filter.SortBy, filter.SortDesc)
	return filtered, nil
}

// List returns one page of the filtered view. A page index beyond the
// filtered set resets to the first page; an empty result is an empty
// page, not an error.
func (s *Service) List(ctx context.Context, filter FilterSpec, page int) (*Page, error) {
	filtered, err := s.Snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Records:      filtered[start:end],
		Page:         page,
		TotalPages:   totalPages,
		TotalRecords: total,
	}, nil
}
