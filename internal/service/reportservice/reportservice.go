package reportservice

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/service/ledgerservice"
)

type Ledger interface {
	Snapshot(ctx context.Context, filter ledgerservice.FilterSpec) ([]domain.PointsRecord, error)
}

var reportHeader = []string{
	"CUSTOMER CODE",
	"ADDRESS1",
	"ADDRESS2",
	"ADDRESS3",
	"ADDRESS4",
	"MOBILE",
	"TOTAL POINTS",
	"CLAIMED POINTS",
	"UNCLAIMED POINTS",
	"LAST SALES DATE",
}

type Service struct {
	ledger Ledger
}

func New(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Export writes the filtered record set as a CSV report, points to one
// decimal place, dates in ISO form.
func (s *Service) Export(ctx context.Context, filter ledgerservice.FilterSpec, w io.Writer) error {
	records, err := s.ledger.Snapshot(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(reportRow(&rec)); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		zap.L().Error("failed to write report", zap.Error(err))
		return err
	}
	return nil
}

func reportRow(rec *domain.PointsRecord) []string {
	date := ""
	if rec.LastSalesDate != nil {
		date = rec.LastSalesDate.Format("2006-01-02")
	}
	return []string{
		strconv.Itoa(rec.CustomerCode),
		rec.Address1,
		rec.Address2,
		rec.Address3,
		rec.Address4,
		rec.Mobile,
		rec.TotalPoints.StringFixed(domain.PointsScale),
		rec.ClaimedPoints.StringFixed(domain.PointsScale),
		rec.UnclaimedPoints.StringFixed(domain.PointsScale),
		date,
	}
}
