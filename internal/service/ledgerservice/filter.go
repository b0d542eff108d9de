package ledgerservice

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pointsdesk/pointsdesk/internal/domain"
)

type SortKey string

const (
	SortByCustomerCode    SortKey = "customer_code"
	SortByTotalPoints     SortKey = "total_points"
	SortByUnclaimedPoints SortKey = "unclaimed_points"
	SortByLastSalesDate   SortKey = "last_sales_date"
	SortByAddress1        SortKey = "address1"
)

// FilterSpec is the transient view description derived from user input.
// Zero values mean "no constraint".
type FilterSpec struct {
	CustomerCode string
	Address1     string
	Mobile       string

	TotalMin     *decimal.Decimal
	TotalMax     *decimal.Decimal
	UnclaimedMin *decimal.Decimal
	UnclaimedMax *decimal.Decimal

	FromDate *time.Time
	ToDate   *time.Time

	SortBy   SortKey
	SortDesc bool
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matches(rec *domain.PointsRecord, f *FilterSpec) bool {
	if f.CustomerCode != "" && !containsFold(strconv.Itoa(rec.CustomerCode), f.CustomerCode) {
		return false
	}
	if f.Address1 != "" && !containsFold(rec.Address1, f.Address1) {
		return false
	}
	if f.Mobile != "" && !containsFold(rec.Mobile, f.Mobile) {
		return false
	}
	if f.TotalMin != nil && rec.TotalPoints.LessThan(*f.TotalMin) {
		return false
	}
	if f.TotalMax != nil && rec.TotalPoints.GreaterThan(*f.TotalMax) {
		return false
	}
	if f.UnclaimedMin != nil && rec.UnclaimedPoints.LessThan(*f.UnclaimedMin) {
		return false
	}
	if f.UnclaimedMax != nil && rec.UnclaimedPoints.GreaterThan(*f.UnclaimedMax) {
		return false
	}
	if f.FromDate != nil && (rec.LastSalesDate == nil || rec.LastSalesDate.Before(*f.FromDate)) {
		return false
	}
	if f.ToDate != nil && (rec.LastSalesDate == nil || rec.LastSalesDate.After(*f.ToDate)) {
		return false
	}
	return true
}

func applyFilter(records []domain.PointsRecord, f *FilterSpec) []domain.PointsRecord {
	filtered := make([]domain.PointsRecord, 0, len(records))
	for _, rec := range records {
		if matches(&rec, f) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// compare is type-aware per sort key: decimals compare numerically,
// strings case-insensitively, dates chronologically with nulls first.
func compare(a, b *domain.PointsRecord, key SortKey) int {
	switch key {
	case SortByTotalPoints:
		return a.TotalPoints.Cmp(b.TotalPoints)
	case SortByUnclaimedPoints:
		return a.UnclaimedPoints.Cmp(b.UnclaimedPoints)
	case SortByAddress1:
		return strings.Compare(strings.ToLower(a.Address1), strings.ToLower(b.Address1))
	case SortByLastSalesDate:
		switch {
		case a.LastSalesDate == nil && b.LastSalesDate == nil:
			return 0
		case a.LastSalesDate == nil:
			return -1
		case b.LastSalesDate == nil:
			return 1
		default:
			return a.LastSalesDate.Compare(*b.LastSalesDate)
		}
	default:
		switch {
		case a.CustomerCode < b.CustomerCode:
			return -1
		case a.CustomerCode > b.CustomerCode:
			return 1
		default:
			return 0
		}
	}
}

func sortRecords(records []domain.PointsRecord, key SortKey, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		c := compare(&records[i], &records[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
}
