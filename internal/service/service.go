package service

import (
	"github.com/pointsdesk/pointsdesk/internal/feed"
	"github.com/pointsdesk/pointsdesk/internal/repo"
	"github.com/pointsdesk/pointsdesk/internal/service/authservice"
	"github.com/pointsdesk/pointsdesk/internal/service/ingestservice"
	"github.com/pointsdesk/pointsdesk/internal/service/ledgerservice"
	"github.com/pointsdesk/pointsdesk/internal/service/pointsservice"
	"github.com/pointsdesk/pointsdesk/internal/service/reportservice"
	pkgauth "github.com/pointsdesk/pointsdesk/pkg/auth"
)

type Services struct {
	AuthService   *authservice.Service
	LedgerService *ledgerservice.Service
	PointsService *pointsservice.Service
	IngestService *ingestservice.Service
	ReportService *reportservice.Service
}

func New(repo *repo.Repositories, hub *feed.Hub) *Services {
	ledgerService := ledgerservice.New(repo.PointsRepo)
	pointsService := pointsservice.New(repo.PointsRepo, hub)
	ingestService := ingestservice.New(repo.PointsRepo, hub)
	reportService := reportservice.New(ledgerService)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:   authService,
		LedgerService: ledgerService,
		PointsService: pointsService,
		IngestService: ingestService,
		ReportService: reportService,
	}
}
