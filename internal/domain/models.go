package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int    `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
}

// PointsRecord is one row of the customer points ledger. CustomerCode is
// immutable once the record exists; TotalPoints is expected to equal
// ClaimedPoints + UnclaimedPoints, repaired lazily by the reconciler.
type PointsRecord struct {
	CustomerCode    int             `db:"customer_code"`
	SerialNo        *int            `db:"sl_no"`
	Address1        string          `db:"address1"`
	Address2        string          `db:"address2"`
	Address3        string          `db:"address3"`
	Address4        string          `db:"address4"`
	PinCode         string          `db:"pin_code"`
	Phone           string          `db:"phone"`
	Mobile          string          `db:"mobile"`
	TotalPoints     decimal.Decimal `db:"total_points"`
	ClaimedPoints   decimal.Decimal `db:"claimed_points"`
	UnclaimedPoints decimal.Decimal `db:"unclaimed_points"`
	LastSalesDate   *time.Time      `db:"last_sales_date"`
}
