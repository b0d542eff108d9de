package ingestservice

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/feed"
)

type Repo interface {
	GetByCodes(ctx context.Context, customerCodes []int) ([]domain.PointsRecord, error)
	Upsert(ctx context.Context, records []domain.PointsRecord) error
}

var (
	ErrParse       = errors.New("failed to parse csv")
	ErrNoValidRows = errors.New("no valid rows in csv")
)

const sourceDateLayout = "02-01-2006"

// Recognized headers, normalized to upper case. Unknown columns are
// ignored; missing optional columns default to empty values.
const (
	colCustomerCode = "CUSTOMER CODE"
	colSerialNo     = "SL NO"
	colAddress1     = "ADDRESS1"
	colAddress2     = "ADDRESS2"
	colAddress3     = "ADDRESS3"
	colAddress4     = "ADDRESS4"
	colPinCode      = "PIN CODE"
	colPhone        = "PHONE"
	colMobile       = "MOBILE"
	colNetWeight    = "NET WEIGHT"
	colSalesDate    = "LAST SALES DATE"
)

// Summary reports one ingested batch back to the caller.
type Summary struct {
	BatchID  string
	Accepted int
	Skipped  int
	Inserted int
	Updated  int
	Records  []domain.PointsRecord
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

// Ingest parses a delimited upload, drops rows without an integer
// customer code and a numeric net weight, reconciles the survivors
// against stored balances and writes them as one batch.
func (s *Service) Ingest(ctx context.Context, r io.Reader) (*Summary, error) {
	rows, skipped, err := parseRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}
	accepted := len(rows)
	rows = mergeDuplicates(rows)

	codes := make([]int, 0, len(rows))
	for _, rec := range rows {
		codes = append(codes, rec.CustomerCode)
	}

	existing, err := s.pointsRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("fetch existing records: %w", err)
	}
	existingByCode := make(map[int]domain.PointsRecord, len(existing))
	for _, rec := range existing {
		existingByCode[rec.CustomerCode] = rec
	}

	// For codes already on the ledger the incoming delta is added to the
	// stored total and unclaimed balances; claimed is never touched.
	summary := &Summary{BatchID: uuid.NewString(), Skipped: skipped}
	for i := range rows {
		if stored, ok := existingByCode[rows[i].CustomerCode]; ok {
			rows[i].TotalPoints = domain.Round1(stored.TotalPoints.Add(rows[i].TotalPoints))
			rows[i].UnclaimedPoints = domain.Round1(stored.UnclaimedPoints.Add(rows[i].UnclaimedPoints))
			rows[i].ClaimedPoints = stored.ClaimedPoints
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := s.pointsRepo.Upsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("write batch: %w", err)
	}

	for i := range rows {
		event := feed.Event{Type: feed.EventInsert, New: &rows[i]}
		if stored, ok := existingByCode[rows[i].CustomerCode]; ok {
			event.Type = feed.EventUpdate
			event.Old = &stored
		}
		s.publisher.Publish(event)
	}

	summary.Accepted = accepted
	summary.Records = rows
	zap.L().Info("csv batch ingested",
		zap.String("batchID", summary.BatchID),
		zap.Int("accepted", summary.Accepted),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// mergeDuplicates folds repeated customer codes within one upload into
// a single row. The upsert is keyed by code and keeps one row each, so
// the deltas have to accumulate first; the later row wins the text
// fields.
func mergeDuplicates(rows []domain.PointsRecord) []domain.PointsRecord {
	index := make(map[int]int, len(rows))
	merged := make([]domain.PointsRecord, 0, len(rows))
	for _, rec := range rows {
		i, ok := index[rec.CustomerCode]
		if !ok {
			index[rec.CustomerCode] = len(merged)
			merged = append(merged, rec)
			continue
		}
		rec.TotalPoints = domain.Round1(merged[i].TotalPoints.Add(rec.TotalPoints))
		rec.UnclaimedPoints = domain.Round1(merged[i].UnclaimedPoints.Add(rec.UnclaimedPoints))
		merged[i] = rec
	}
	return merged
}

func parseRows(r io.Reader) ([]domain.PointsRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("%w: missing header row", ErrParse)
	}

	header := raw[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if _, ok := index[colCustomerCode]; !ok {
		return nil, 0, fmt.Errorf("%w: missing %s column", ErrParse, colCustomerCode)
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []domain.PointsRecord
	var skipped int
	for _, row := range raw[1:] {
		customerCode, err := strconv.Atoi(field(row, colCustomerCode))
		if err != nil {
			skipped++
			continue
		}
		weight, err := decimal.NewFromString(field(row, colNetWeight))
		if err != nil {
			skipped++
			continue
		}

		delta := domain.PointsFromWeight(weight)
		rec := domain.PointsRecord{
			CustomerCode:    customerCode,
			Address1:        field(row, colAddress1),
			Address2:        field(row, colAddress2),
			Address3:        field(row, colAddress3),
			Address4:        field(row, colAddress4),
			PinCode:         field(row, colPinCode),
			Phone:           field(row, colPhone),
			Mobile:          field(row, colMobile),
			TotalPoints:     delta,
			ClaimedPoints:   decimal.Zero,
			UnclaimedPoints: delta,
		}

		if slNo, err := strconv.Atoi(field(row, colSerialNo)); err == nil {
			rec.SerialNo = &slNo
		}
		// an unparseable date is nulled, never an error
		if d, err := time.Parse(sourceDateLayout, field(row, colSalesDate)); err == nil {
			rec.LastSalesDate = &d
		}

		records = append(records, rec)
	}

	return records, skipped, nil
}
