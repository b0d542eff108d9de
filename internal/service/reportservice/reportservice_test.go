package reportservice

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*Service, *MockLedger) {
	ctrl := gomock.NewController(t)
	ledger := NewMockLedger(ctrl)

	service := New(ledger)
	defer ctrl.Finish()
	return service, ledger
}

func TestExport(t *testing.T) {
	service, ledger := NewMock(t)

	juneFirst := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.PointsRecord{
		{
			CustomerCode:    100,
			Address1:        "12 Market Street",
			Address2:        "Old Town",
			Mobile:          "9876543210",
			TotalPoints:     decimal.RequireFromString("10.0"),
			ClaimedPoints:   decimal.RequireFromString("4.0"),
			UnclaimedPoints: decimal.RequireFromString("6.0"),
			LastSalesDate:   &juneFirst,
		},
		{
			CustomerCode:    205,
			Address1:        "45 Harbour Road",
			TotalPoints:     decimal.RequireFromString("3.5"),
			ClaimedPoints:   decimal.RequireFromString("0.0"),
			UnclaimedPoints: decimal.RequireFromString("3.5"),
		},
	}

	ledger.EXPECT().Snapshot(context.Background(), ledgerservice.FilterSpec{}).Return(records, nil)

	var buf bytes.Buffer
	err := service.Export(context.Background(), ledgerservice.FilterSpec{}, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "CUSTOMER CODE,ADDRESS1,ADDRESS2,ADDRESS3,ADDRESS4,MOBILE,TOTAL POINTS,CLAIMED POINTS,UNCLAIMED POINTS,LAST SALES DATE", lines[0])
	assert.Equal(t, "100,12 Market Street,Old Town,,,9876543210,10.0,4.0,6.0,2024-06-01", lines[1])
	assert.Equal(t, "205,45 Harbour Road,,,,,3.5,0.0,3.5,", lines[2])
}

func TestExport_EmptyLedger(t *testing.T) {
	service, ledger := NewMock(t)
	ledger.EXPECT().Snapshot(context.Background(), ledgerservice.FilterSpec{}).Return(nil, nil)

	var buf bytes.Buffer
	err := service.Export(context.Background(), ledgerservice.FilterSpec{}, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestExport_SnapshotError(t *testing.T) {
	service, ledger := NewMock(t)
	ledger.EXPECT().Snapshot(context.Background(), ledgerservice.FilterSpec{}).Return(nil, errors.New("database error"))

	var buf bytes.Buffer
	err := service.Export(context.Background(), ledgerservice.FilterSpec{}, &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
