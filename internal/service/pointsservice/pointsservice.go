package pointsservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/feed"
)

type Repo interface {
	GetByCode(ctx context.Context, customerCode int) (*domain.PointsRecord, error)
	Update(ctx context.Context, rec *domain.PointsRecord) error
	Delete(ctx context.Context, customerCode int) error
}

var (
	ErrRecordNotFound    = errors.New("points record not found")
	ErrNoUnclaimedPoints = errors.New("no unclaimed points available")
	ErrInvalidWeight     = errors.New("weight must be a positive number")
)

var claimUnit = decimal.NewFromInt(1)

// FieldPatch carries the editable fields of a record; nil means leave
// the stored value alone. The customer code itself is immutable.
type FieldPatch struct {
	SerialNo      *int
	Address1      *string
	Address2      *string
	Address3      *string
	Address4      *string
	PinCode       *string
	Phone         *string
	Mobile        *string
	TotalPoints   *decimal.Decimal
	ClaimedPoints *decimal.Decimal
	LastSalesDate *time.Time
}

type Service struct {
	pointsRepo Repo
	publisher  feed.Publisher
}

func New(pointsRepo Repo, publisher feed.Publisher) *Service {
	return &Service{
		pointsRepo: pointsRepo,
		publisher:  publisher,
	}
}

func (s *Service) get(ctx context.Context, customerCode int) (*domain.PointsRecord, error) {
	rec, err := s.pointsRepo.GetByCode(ctx, customerCode)
	if err != nil {
		zap.L().Error("failed to fetch points record", zap.Error(err))
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// Claim converts one unit of unclaimed points to claimed. Refused
// before any write when the unclaimed balance is below one unit.
func (s *Service) Claim(ctx context.Context, customerCode int) (*domain.PointsRecord, error) {
	rec, err := s.get(ctx, customerCode)
	if err != nil {
		return nil, err
	}

	if rec.UnclaimedPoints.LessThan(claimUnit) {
		return nil, ErrNoUnclaimedPoints
	}

	old := *rec
	rec.ClaimedPoints = domain.Round1(rec.ClaimedPoints.Add(claimUnit))
	rec.UnclaimedPoints = domain.Round1(rec.UnclaimedPoints.Sub(claimUnit))

	if err := s.pointsRepo.Update(ctx, rec); err != nil {
		zap.L().Error("failed to write claim", zap.Error(err))
		return nil, err
	}

	s.publisher.Publish(feed.Event{Type: feed.EventUpdate, New: rec, Old: &old})
	zap.L().Info("point claimed", zap.Int("customerCode", customerCode))
	return rec, nil
}

// AddWeight converts grams to points at the 10:1 ratio and credits the
// total and unclaimed balances.
func (s *Service) AddWeight(ctx context.Context, customerCode int, grams decimal.Decimal) (*domain.PointsRecord, error) {
	if grams.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidWeight
	}

	rec, err := s.get(ctx, customerCode)
	if err != nil {
		return nil, err
	}

	delta := domain.PointsFromWeight(grams)
	old := *rec
	rec.TotalPoints = domain.Round1(rec.TotalPoints.Add(delta))
	rec.UnclaimedPoints = domain.Round1(rec.UnclaimedPoints.Add(delta))

	if err := s.pointsRepo.Update(ctx, rec); err != nil {
		zap.L().Error("failed to write weight credit", zap.Error(err))
		return nil, err
	}

	s.publisher.Publish(feed.Event{Type: feed.EventUpdate, New: rec, Old: &old})
	zap.L().Info("weight credited",
		zap.Int("customerCode", customerCode),
		zap.String("points", delta.StringFixed(domain.PointsScale)))
	return rec, nil
}

// Edit overwrites the supplied fields; numeric fields are normalized to
// one decimal place before the write. Unclaimed points are derived, not
// edited directly: they follow total - claimed.
func (s *Service) Edit(ctx context.Context, customerCode int, patch FieldPatch) (*domain.PointsRecord, error) {
	rec, err := s.get(ctx, customerCode)
	if err != nil {
		return nil, err
	}

	old := *rec
	if patch.SerialNo != nil {
		rec.SerialNo = patch.SerialNo
	}
	if patch.Address1 != nil {
		rec.Address1 = *patch.Address1
	}
	if patch.Address2 != nil {
		rec.Address2 = *patch.Address2
	}
	if patch.Address3 != nil {
		rec.Address3 = *patch.Address3
	}
	if patch.Address4 != nil {
		rec.Address4 = *patch.Address4
	}
	if patch.PinCode != nil {
		rec.PinCode = *patch.PinCode
	}
	if patch.Phone != nil {
		rec.Phone = *patch.Phone
	}
	if patch.Mobile != nil {
		rec.Mobile = *patch.Mobile
	}
	if patch.TotalPoints != nil {
		rec.TotalPoints = domain.Round1(*patch.TotalPoints)
	}
	if patch.ClaimedPoints != nil {
		rec.ClaimedPoints = domain.Round1(*patch.ClaimedPoints)
	}
	if patch.TotalPoints != nil || patch.ClaimedPoints != nil {
		rec.UnclaimedPoints = domain.Round1(rec.TotalPoints.Sub(rec.ClaimedPoints))
	}
	if patch.LastSalesDate != nil {
		rec.LastSalesDate = patch.LastSalesDate
	}

	if err := s.pointsRepo.Update(ctx, rec); err != nil {
		zap.L().Error("failed to write record edit", zap.Error(err))
		return nil, err
	}

	s.publisher.Publish(feed.Event{Type: feed.EventUpdate, New: rec, Old: &old})
	return rec, nil
}

// Delete removes the record permanently; there is no soft delete.
func (s *Service) Delete(ctx context.Context, customerCode int) error {
	rec, err := s.get(ctx, customerCode)
	if err != nil {
		return err
	}

	if err := s.pointsRepo.Delete(ctx, customerCode); err != nil {
		zap.L().Error("failed to delete points record", zap.Error(err))
		return err
	}

	s.publisher.Publish(feed.Event{Type: feed.EventDelete, Old: rec})
	zap.L().Info("points record deleted", zap.Int("customerCode", customerCode))
	return nil
}
