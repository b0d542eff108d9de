package pointsrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/pg"
)

var recordColumnNames = []string{
	"customer_code", "sl_no",
	"address1", "address2", "address3", "address4",
	"pin_code", "phone", "mobile",
	"total_points", "claimed_points", "unclaimed_points",
	"last_sales_date",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func recordRow(rec *domain.PointsRecord) *pgxmock.Rows {
	return pgxmock.NewRows(recordColumnNames).AddRow(
		rec.CustomerCode, rec.SerialNo,
		rec.Address1, rec.Address2, rec.Address3, rec.Address4,
		rec.PinCode, rec.Phone, rec.Mobile,
		rec.TotalPoints, rec.ClaimedPoints, rec.UnclaimedPoints,
		rec.LastSalesDate,
	)
}

func sampleRecord() *domain.PointsRecord {
	juneFirst := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	slNo := 7
	return &domain.PointsRecord{
		CustomerCode:    100,
		SerialNo:        &slNo,
		Address1:        "12 Market Street",
		PinCode:         "600001",
		Mobile:          "9876543210",
		TotalPoints:     decimal.RequireFromString("10.0"),
		ClaimedPoints:   decimal.RequireFromString("4.0"),
		UnclaimedPoints: decimal.RequireFromString("6.0"),
		LastSalesDate:   &juneFirst,
	}
}

func TestRepository_GetByCode(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := `SELECT ` + recordColumns + ` FROM points WHERE customer_code = $1`

	tests := []struct {
		name      string
		code      int
		mockSetup func()
		expectErr bool
		result    *domain.PointsRecord
	}{
		{
			name: "Existing code returns record",
			code: 100,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(100).
					WillReturnRows(recordRow(sampleRecord()))
			},
			result: sampleRecord(),
		},
		{
			name: "Unknown code returns nil",
			code: 404,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(404).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			code: 100,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(100).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByCode(context.Background(), tt.code)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.result == nil {
				assert.Nil(t, result)
			} else {
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := `SELECT ` + recordColumns + ` FROM points`

	t.Run("Returns all records", func(t *testing.T) {
		first := sampleRecord()
		second := sampleRecord()
		second.CustomerCode = 205

		rows := recordRow(first).AddRow(
			second.CustomerCode, second.SerialNo,
			second.Address1, second.Address2, second.Address3, second.Address4,
			second.PinCode, second.Phone, second.Mobile,
			second.TotalPoints, second.ClaimedPoints, second.UnclaimedPoints,
			second.LastSalesDate,
		)
		mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(rows)

		records, err := repo.GetAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, 100, records[0].CustomerCode)
		assert.Equal(t, 205, records[1].CustomerCode)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(errors.New("database error"))

		records, err := repo.GetAll(context.Background())
		assert.Error(t, err)
		assert.Nil(t, records)
	})
}

func TestRepository_GetByCodes(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := `SELECT ` + recordColumns + ` FROM points WHERE customer_code = ANY($1)`

	t.Run("Returns matching records", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs([]int{100, 404}).
			WillReturnRows(recordRow(sampleRecord()))

		records, err := repo.GetByCodes(context.Background(), []int{100, 404})
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, 100, records[0].CustomerCode)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs([]int{100}).
			WillReturnError(errors.New("database error"))

		records, err := repo.GetByCodes(context.Background(), []int{100})
		assert.Error(t, err)
		assert.Nil(t, records)
	})
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock, tx := NewMock(t)

	t.Run("Writes batch inside transaction", func(t *testing.T) {
		rec := sampleRecord()
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectExec("INSERT INTO points").
				WithArgs(
					rec.CustomerCode, rec.SerialNo,
					rec.Address1, rec.Address2, rec.Address3, rec.Address4,
					rec.PinCode, rec.Phone, rec.Mobile,
					rec.TotalPoints, rec.ClaimedPoints, rec.UnclaimedPoints,
					rec.LastSalesDate,
				).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			return fn(ctx)
		})

		err := repo.Upsert(context.Background(), []domain.PointsRecord{*rec})
		assert.NoError(t, err)
	})

	t.Run("Failed row aborts the batch", func(t *testing.T) {
		rec := sampleRecord()
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			mock.ExpectExec("INSERT INTO points").
				WillReturnError(errors.New("database error"))
			return fn(ctx)
		})

		err := repo.Upsert(context.Background(), []domain.PointsRecord{*rec})
		assert.Error(t, err)
	})
}

func TestRepository_Update(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name        string
		mockSetup   func(rec *domain.PointsRecord)
		expectedErr error
	}{
		{
			name: "Successful update",
			mockSetup: func(rec *domain.PointsRecord) {
				mock.ExpectExec("UPDATE points").
					WithArgs(
						rec.CustomerCode, rec.SerialNo,
						rec.Address1, rec.Address2, rec.Address3, rec.Address4,
						rec.PinCode, rec.Phone, rec.Mobile,
						rec.TotalPoints, rec.ClaimedPoints, rec.UnclaimedPoints,
						rec.LastSalesDate,
					).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Missing record reported as no rows",
			mockSetup: func(rec *domain.PointsRecord) {
				mock.ExpectExec("UPDATE points").
					WithArgs(
						rec.CustomerCode, rec.SerialNo,
						rec.Address1, rec.Address2, rec.Address3, rec.Address4,
						rec.PinCode, rec.Phone, rec.Mobile,
						rec.TotalPoints, rec.ClaimedPoints, rec.UnclaimedPoints,
						rec.LastSalesDate,
					).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: pgx.ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			tt.mockSetup(rec)

			err := repo.Update(context.Background(), rec)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := `DELETE FROM points WHERE customer_code = $1`

	tests := []struct {
		name        string
		code        int
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Successful delete",
			code: 100,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs(100).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "Missing record reported as no rows",
			code: 404,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs(404).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			expectedErr: pgx.ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			err := repo.Delete(context.Background(), tt.code)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_FindInconsistent(t *testing.T) {
	repo, mock, _ := NewMock(t)

	t.Run("Returns drifted records", func(t *testing.T) {
		drifted := sampleRecord()
		drifted.TotalPoints = decimal.RequireFromString("9.0")

		mock.ExpectQuery("WHERE total_points <> claimed_points \\+ unclaimed_points").
			WithArgs(uint32(1000)).
			WillReturnRows(recordRow(drifted))

		records, err := repo.FindInconsistent(context.Background(), 1000)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "9.0", records[0].TotalPoints.StringFixed(domain.PointsScale))
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("WHERE total_points <> claimed_points \\+ unclaimed_points").
			WithArgs(uint32(1000)).
			WillReturnError(errors.New("database error"))

		records, err := repo.FindInconsistent(context.Background(), 1000)
		assert.Error(t, err)
		assert.Nil(t, records)
	})
}
