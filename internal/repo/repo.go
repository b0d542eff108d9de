package repo

import (
	"context"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/pg"
	pointsrepo "github.com/pointsdesk/pointsdesk/internal/repo/points-repo"
	userrepo "github.com/pointsdesk/pointsdesk/internal/repo/user-repo"
	"github.com/pointsdesk/pointsdesk/internal/service/authservice"
)

// PointsRepo is the full gateway surface over the points table; the
// services each depend on their own narrower slice of it.
type PointsRepo interface {
	GetAll(ctx context.Context) ([]domain.PointsRecord, error)
	GetByCode(ctx context.Context, customerCode int) (*domain.PointsRecord, error)
	GetByCodes(ctx context.Context, customerCodes []int) ([]domain.PointsRecord, error)
	Upsert(ctx context.Context, records []domain.PointsRecord) error
	Update(ctx context.Context, rec *domain.PointsRecord) error
	Delete(ctx context.Context, customerCode int) error
	FindInconsistent(ctx context.Context, limit uint32) ([]domain.PointsRecord, error)
}

type Repositories struct {
	UserRepo   authservice.Repo
	PointsRepo PointsRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	pointsRepo := pointsrepo.New(conn, txManager)

	return &Repositories{
		UserRepo:   userRepo,
		PointsRepo: pointsRepo,
	}
}
