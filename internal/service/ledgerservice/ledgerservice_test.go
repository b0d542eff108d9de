package ledgerservice

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/feed"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)

	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func makeRecords(n int) []domain.PointsRecord {
	records := make([]domain.PointsRecord, n)
	for i := range records {
		records[i] = domain.PointsRecord{
			CustomerCode:    i + 1,
			Address1:        "Street " + strconv.Itoa(i+1),
			Mobile:          "98765" + strconv.Itoa(i+1),
			TotalPoints:     decimal.NewFromInt(int64(i + 1)),
			ClaimedPoints:   decimal.Zero,
			UnclaimedPoints: decimal.NewFromInt(int64(i + 1)),
		}
	}
	return records
}

func TestList_Pagination(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().GetAll(gomock.Any()).Return(makeRecords(23), nil).Times(1)

	tests := []struct {
		name            string
		page            int
		expectedPage    int
		expectedRecords int
	}{
		{name: "First page is full", page: 1, expectedPage: 1, expectedRecords: 10},
		{name: "Middle page is full", page: 2, expectedPage: 2, expectedRecords: 10},
		{name: "Last page holds remainder", page: 3, expectedPage: 3, expectedRecords: 3},
		{name: "Page beyond range resets to first", page: 7, expectedPage: 1, expectedRecords: 10},
		{name: "Zero page resets to first", page: 0, expectedPage: 1, expectedRecords: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := service.List(context.Background(), FilterSpec{}, tt.page)
			assert.NoError(t, err)

			assert.Equal(t, tt.expectedPage, page.Page)
			assert.Equal(t, tt.expectedRecords, len(page.Records))
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 23, page.TotalRecords)
		})
	}
}

func TestList_EmptyLedger(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

	page, err := service.List(context.Background(), FilterSpec{}, 1)
	assert.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.TotalRecords)
}

func TestList_LoadError(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("database error"))

	page, err := service.List(context.Background(), FilterSpec{}, 1)
	assert.Error(t, err)
	assert.Nil(t, page)
}

func TestSnapshot_Filter(t *testing.T) {
	juneFirst := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	julyFirst := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	low := decimal.RequireFromString("5.0")
	high := decimal.RequireFromString("20.0")

	records := []domain.PointsRecord{
		{
			CustomerCode:    100,
			Address1:        "12 Market Street",
			Mobile:          "9876543210",
			TotalPoints:     decimal.RequireFromString("10.0"),
			UnclaimedPoints: decimal.RequireFromString("10.0"),
			LastSalesDate:   &juneFirst,
		},
		{
			CustomerCode:    205,
			Address1:        "45 Harbour Road",
			Mobile:          "1234567890",
			TotalPoints:     decimal.RequireFromString("3.0"),
			UnclaimedPoints: decimal.RequireFromString("3.0"),
			LastSalesDate:   &julyFirst,
		},
		{
			CustomerCode:    310,
			Address1:        "MARKET Lane",
			Mobile:          "NA",
			TotalPoints:     decimal.RequireFromString("25.0"),
			UnclaimedPoints: decimal.RequireFromString("25.0"),
			LastSalesDate:   nil,
		},
	}

	tests := []struct {
		name          string
		filter        FilterSpec
		expectedCodes []int
	}{
		{
			name:          "No constraints returns everything",
			filter:        FilterSpec{},
			expectedCodes: []int{100, 205, 310},
		},
		{
			name:          "Customer code substring",
			filter:        FilterSpec{CustomerCode: "10"},
			expectedCodes: []int{100, 310},
		},
		{
			name:          "Address match is case-insensitive",
			filter:        FilterSpec{Address1: "market"},
			expectedCodes: []int{100, 310},
		},
		{
			name:          "Mobile substring",
			filter:        FilterSpec{Mobile: "987"},
			expectedCodes: []int{100},
		},
		{
			name:          "Mobile match is case-insensitive",
			filter:        FilterSpec{Mobile: "na"},
			expectedCodes: []int{310},
		},
		{
			name:          "Total minimum",
			filter:        FilterSpec{TotalMin: &low},
			expectedCodes: []int{100, 310},
		},
		{
			name:          "Total range",
			filter:        FilterSpec{TotalMin: &low, TotalMax: &high},
			expectedCodes: []int{100},
		},
		{
			name:          "Unclaimed maximum",
			filter:        FilterSpec{UnclaimedMax: &high},
			expectedCodes: []int{100, 205},
		},
		{
			name:          "Date lower bound excludes null dates",
			filter:        FilterSpec{FromDate: &juneFirst},
			expectedCodes: []int{100, 205},
		},
		{
			name:          "Date range",
			filter:        FilterSpec{FromDate: &juneFirst, ToDate: &juneFirst},
			expectedCodes: []int{100},
		},
		{
			name:          "Combined filters",
			filter:        FilterSpec{Address1: "market", TotalMin: &high},
			expectedCodes: []int{310},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			repo.EXPECT().GetAll(gomock.Any()).Return(records, nil)

			filtered, err := service.Snapshot(context.Background(), tt.filter)
			assert.NoError(t, err)

			codes := make([]int, len(filtered))
			for i := range filtered {
				codes[i] = filtered[i].CustomerCode
			}
			assert.Equal(t, tt.expectedCodes, codes)
		})
	}
}

func TestSnapshot_FilterIdempotent(t *testing.T) {
	juneFirst := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	low := decimal.RequireFromString("5.0")

	// Equal totals on 100 and 310 so the stable sort order carries
	// information beyond the sort key.
	records := []domain.PointsRecord{
		{CustomerCode: 100, Address1: "12 Market Street", TotalPoints: decimal.RequireFromString("10.0"), LastSalesDate: &juneFirst},
		{CustomerCode: 205, Address1: "45 Harbour Road", TotalPoints: decimal.RequireFromString("3.0")},
		{CustomerCode: 310, Address1: "MARKET Lane", TotalPoints: decimal.RequireFromString("10.0")},
	}

	service, repo := NewMock(t)
	repo.EXPECT().GetAll(gomock.Any()).Return(records, nil)

	filter := FilterSpec{Address1: "market", TotalMin: &low, SortBy: SortByTotalPoints}

	first, err := service.Snapshot(context.Background(), filter)
	assert.NoError(t, err)
	second, err := service.Snapshot(context.Background(), filter)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSnapshot_Sort(t *testing.T) {
	juneFirst := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	julyFirst := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.PointsRecord{
		{CustomerCode: 1, Address1: "zebra", TotalPoints: decimal.RequireFromString("10.0"), LastSalesDate: &julyFirst},
		{CustomerCode: 2, Address1: "Apple", TotalPoints: decimal.RequireFromString("25.0"), LastSalesDate: nil},
		{CustomerCode: 3, Address1: "mango", TotalPoints: decimal.RequireFromString("3.0"), LastSalesDate: &juneFirst},
	}

	tests := []struct {
		name          string
		sortBy        SortKey
		desc          bool
		expectedCodes []int
	}{
		{name: "Default sorts by customer code", expectedCodes: []int{1, 2, 3}},
		{name: "Customer code descending", sortBy: SortByCustomerCode, desc: true, expectedCodes: []int{3, 2, 1}},
		{name: "Total points ascending", sortBy: SortByTotalPoints, expectedCodes: []int{3, 1, 2}},
		{name: "Total points descending", sortBy: SortByTotalPoints, desc: true, expectedCodes: []int{2, 1, 3}},
		{name: "Address is case-insensitive", sortBy: SortByAddress1, expectedCodes: []int{2, 3, 1}},
		{name: "Dates ascending with nulls first", sortBy: SortByLastSalesDate, expectedCodes: []int{2, 3, 1}},
		{name: "Dates descending with nulls last", sortBy: SortByLastSalesDate, desc: true, expectedCodes: []int{1, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			repo.EXPECT().GetAll(gomock.Any()).Return(records, nil)

			sorted, err := service.Snapshot(context.Background(), FilterSpec{SortBy: tt.sortBy, SortDesc: tt.desc})
			assert.NoError(t, err)

			codes := make([]int, len(sorted))
			for i := range sorted {
				codes[i] = sorted[i].CustomerCode
			}
			assert.Equal(t, tt.expectedCodes, codes)
		})
	}
}

func TestApplyEvent(t *testing.T) {
	newRecord := func(code int, total string) *domain.PointsRecord {
		return &domain.PointsRecord{
			CustomerCode:    code,
			TotalPoints:     decimal.RequireFromString(total),
			UnclaimedPoints: decimal.RequireFromString(total),
		}
	}

	t.Run("Insert appends to cache", func(t *testing.T) {
		service, repo := NewMock(t)
		repo.EXPECT().GetAll(gomock.Any()).Return(makeRecords(2), nil)
		assert.NoError(t, service.Reload(context.Background()))

		service.applyEvent(feed.Event{Type: feed.EventInsert, New: newRecord(99, "5.0")})

		page, err := service.List(context.Background(), FilterSpec{}, 1)
		assert.NoError(t, err)
		assert.Equal(t, 3, page.TotalRecords)
	})

	t.Run("Update replaces matching record", func(t *testing.T) {
		service, repo := NewMock(t)
		repo.EXPECT().GetAll(gomock.Any()).Return(makeRecords(2), nil)
		assert.NoError(t, service.Reload(context.Background()))

		service.applyEvent(feed.Event{Type: feed.EventUpdate, New: newRecord(2, "50.0")})

		snapshot, err := service.Snapshot(context.Background(), FilterSpec{CustomerCode: "2"})
		assert.NoError(t, err)
		assert.Len(t, snapshot, 1)
		assert.Equal(t, "50.0", snapshot[0].TotalPoints.StringFixed(domain.PointsScale))
	})

	t.Run("Delete removes matching record", func(t *testing.T) {
		service, repo := NewMock(t)
		repo.EXPECT().GetAll(gomock.Any()).Return(makeRecords(2), nil)
		assert.NoError(t, service.Reload(context.Background()))

		service.applyEvent(feed.Event{Type: feed.EventDelete, Old: newRecord(1, "1.0")})

		page, err := service.List(context.Background(), FilterSpec{}, 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, page.TotalRecords)
	})

	t.Run("Events before first load are dropped", func(t *testing.T) {
		service, repo := NewMock(t)

		service.applyEvent(feed.Event{Type: feed.EventInsert, New: newRecord(99, "5.0")})

		repo.EXPECT().GetAll(gomock.Any()).Return(makeRecords(2), nil)
		page, err := service.List(context.Background(), FilterSpec{}, 1)
		assert.NoError(t, err)
		assert.Equal(t, 2, page.TotalRecords)
	})
}

func TestStart_ConsumesEvents(t *testing.T) {
	service, repo := NewMock(t)
	repo.EXPECT().GetAll(gomock.Any()).Return(makeRecords(1), nil)
	assert.NoError(t, service.Reload(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan feed.Event, 1)
	service.Start(ctx, events)

	events <- feed.Event{Type: feed.EventInsert, New: &domain.PointsRecord{
		CustomerCode:    42,
		TotalPoints:     decimal.RequireFromString("5.0"),
		UnclaimedPoints: decimal.RequireFromString("5.0"),
	}}

	assert.Eventually(t, func() bool {
		page, err := service.List(context.Background(), FilterSpec{}, 1)
		return err == nil && page.TotalRecords == 2
	}, time.Second, 10*time.Millisecond)
}
