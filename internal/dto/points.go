package dto

type PointsRecordDTO struct {
	CustomerCode    int     `json:"customer_code" example:"100"`
	SerialNo        *int    `json:"sl_no,omitempty"`
	Address1        string  `json:"address1"`
	Address2        string  `json:"address2"`
	Address3        string  `json:"address3"`
	Address4        string  `json:"address4"`
	PinCode         string  `json:"pin_code"`
	Phone           string  `json:"phone"`
	Mobile          string  `json:"mobile"`
	TotalPoints     float64 `json:"total_points" example:"5.0"`
	ClaimedPoints   float64 `json:"claimed_points" example:"0.0"`
	UnclaimedPoints float64 `json:"unclaimed_points" example:"5.0"`
	LastSalesDate   *string `json:"last_sales_date" example:"2024-06-01"`
}

type ListPointsResponseDTO struct {
	Records      []PointsRecordDTO `json:"records"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
	TotalRecords int               `json:"total_records"`
}

type AddWeightRequestDTO struct {
	Grams float64 `json:"grams" example:"50"`
}

// Nil fields are left unchanged; the customer code cannot be edited.
type EditPointsRequestDTO struct {
	SerialNo      *int     `json:"sl_no"`
	Address1      *string  `json:"address1"`
	Address2      *string  `json:"address2"`
	Address3      *string  `json:"address3"`
	Address4      *string  `json:"address4"`
	PinCode       *string  `json:"pin_code"`
	Phone         *string  `json:"phone"`
	Mobile        *string  `json:"mobile"`
	TotalPoints   *float64 `json:"total_points"`
	ClaimedPoints *float64 `json:"claimed_points"`
	LastSalesDate *string  `json:"last_sales_date" example:"2024-06-01"`
}

type UploadResponseDTO struct {
	BatchID  string            `json:"batch_id"`
	Accepted int               `json:"accepted"`
	Skipped  int               `json:"skipped"`
	Inserted int               `json:"inserted"`
	Updated  int               `json:"updated"`
	Records  []PointsRecordDTO `json:"records"`
}
