package pointsrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/pg"
)

const recordColumns = `customer_code, sl_no, address1, address2, address3, address4, pin_code, phone, mobile, total_points, claimed_points, unclaimed_points, last_sales_date`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanRecord(row pgx.Row) (*domain.PointsRecord, error) {
	var rec domain.PointsRecord
	err := row.Scan(
		&rec.CustomerCode, &rec.SerialNo,
		&rec.Address1, &rec.Address2, &rec.Address3, &rec.Address4,
		&rec.PinCode, &rec.Phone, &rec.Mobile,
		&rec.TotalPoints, &rec.ClaimedPoints, &rec.UnclaimedPoints,
		&rec.LastSalesDate,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectRecords(rows pgx.Rows) ([]domain.PointsRecord, error) {
	defer rows.Close()
	var records []domain.PointsRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *Repository) GetAll(ctx context.Context) ([]domain.PointsRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM points`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch points records", zap.Error(err))
		return nil, err
	}
	return collectRecords(rows)
}

func (r *Repository) GetByCode(ctx context.Context, customerCode int) (*domain.PointsRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM points WHERE customer_code = $1`
	rec, err := scanRecord(r.db.QueryRow(ctx, query, customerCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to fetch points record", zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func (r *Repository) GetByCodes(ctx context.Context, customerCodes []int) ([]domain.PointsRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM points WHERE customer_code = ANY($1)`
	rows, err := r.db.Query(ctx, query, customerCodes)
	if err != nil {
		zap.L().Error("failed to fetch points records by codes", zap.Error(err))
		return nil, err
	}
	return collectRecords(rows)
}

// Upsert writes the batch in one transaction keyed by customer code, so
// a mid-batch failure leaves no partial state behind.
func (r *Repository) Upsert(ctx context.Context, records []domain.PointsRecord) error {
	query := `
        INSERT INTO points (` + recordColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (customer_code) DO UPDATE SET
            sl_no = EXCLUDED.sl_no,
            address1 = EXCLUDED.address1,
            address2 = EXCLUDED.address2,
            address3 = EXCLUDED.address3,
            address4 = EXCLUDED.address4,
            pin_code = EXCLUDED.pin_code,
            phone = EXCLUDED.phone,
            mobile = EXCLUDED.mobile,
            total_points = EXCLUDED.total_points,
            claimed_points = EXCLUDED.claimed_points,
            unclaimed_points = EXCLUDED.unclaimed_points,
            last_sales_date = EXCLUDED.last_sales_date
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, rec := range records {
			_, err := r.db.Exec(ctx, query,
				rec.CustomerCode, rec.SerialNo,
				rec.Address1, rec.Address2, rec.Address3, rec.Address4,
				rec.PinCode, rec.Phone, rec.Mobile,
				rec.TotalPoints, rec.ClaimedPoints, rec.UnclaimedPoints,
				rec.LastSalesDate,
			)
			if err != nil {
				zap.L().Error("failed to upsert points record",
					zap.Int("customerCode", rec.CustomerCode), zap.Error(err))
				return err
			}
		}
		return nil
	})
}

func (r *Repository) Update(ctx context.Context, rec *domain.PointsRecord) error {
	query := `
        UPDATE points
        SET sl_no = $2, address1 = $3, address2 = $4, address3 = $5, address4 = $6,
            pin_code = $7, phone = $8, mobile = $9,
            total_points = $10, claimed_points = $11, unclaimed_points = $12,
            last_sales_date = $13
        WHERE customer_code = $1
    `
	tag, err := r.db.Exec(ctx, query,
		rec.CustomerCode, rec.SerialNo,
		rec.Address1, rec.Address2, rec.Address3, rec.Address4,
		rec.PinCode, rec.Phone, rec.Mobile,
		rec.TotalPoints, rec.ClaimedPoints, rec.UnclaimedPoints,
		rec.LastSalesDate,
	)
	if err != nil {
		zap.L().Error("failed to update points record", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, customerCode int) error {
	query := `DELETE FROM points WHERE customer_code = $1`
	tag, err := r.db.Exec(ctx, query, customerCode)
	if err != nil {
		zap.L().Error("failed to delete points record", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindInconsistent returns records whose running total drifted away from
// claimed + unclaimed, for the reconciler to repair.
func (r *Repository) FindInconsistent(ctx context.Context, limit uint32) ([]domain.PointsRecord, error) {
	query := `
        SELECT ` + recordColumns + `
        FROM points
        WHERE total_points <> claimed_points + unclaimed_points
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch inconsistent records", zap.Error(err))
		return nil, err
	}
	return collectRecords(rows)
}
