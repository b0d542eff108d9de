package reconciler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pointsdesk/pointsdesk/internal/config"
	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/feed"
)

var repairing sync.Map

type Repo interface {
	FindInconsistent(ctx context.Context, limit uint32) ([]domain.PointsRecord, error)
	Update(ctx context.Context, rec *domain.PointsRecord) error
}

// Service periodically repairs records whose total drifted away from
// claimed + unclaimed (possible through field edits). The points
// components are authoritative; the total is derived from them.
type Service struct {
	pointsRepo Repo
	publisher  feed.Publisher
	limit      uint32
	workerPool WorkerPoolI
	interval   time.Duration
}

func New(cfg *config.Config, pointsRepo Repo, publisher feed.Publisher) *Service {
	return &Service{
		pointsRepo: pointsRepo,
		publisher:  publisher,
		limit:      1000,
		workerPool: NewWorkerPool(10),
		interval:   cfg.ReconcileInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Ledger reconciler started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.processRecords(ctx)
		}
	}
}

func (s *Service) processRecords(ctx context.Context) {
	records, err := s.pointsRepo.FindInconsistent(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch inconsistent records", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, rec := range records {
		rec := rec

		if _, loaded := repairing.LoadOrStore(rec.CustomerCode, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer repairing.Delete(rec.CustomerCode)
				return s.repair(ctx, rec)
			})
			if err != nil {
				repairing.Delete(rec.CustomerCode)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling records", zap.Error(err))
	}
}

func (s *Service) repair(ctx context.Context, rec domain.PointsRecord) error {
	old := rec
	rec.TotalPoints = domain.Round1(rec.ClaimedPoints.Add(rec.UnclaimedPoints))

	if err := s.pointsRepo.Update(ctx, &rec); err != nil {
		return fmt.Errorf("failed to repair record %d: %w", rec.CustomerCode, err)
	}

	s.publisher.Publish(feed.Event{Type: feed.EventUpdate, New: &rec, Old: &old})
	zap.L().Warn("Repaired drifted points total",
		zap.Int("customerCode", rec.CustomerCode),
		zap.String("was", old.TotalPoints.StringFixed(domain.PointsScale)),
		zap.String("now", rec.TotalPoints.StringFixed(domain.PointsScale)))
	return nil
}
