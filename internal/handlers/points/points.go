package points

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/dto"
	"github.com/pointsdesk/pointsdesk/internal/service/ingestservice"
	"github.com/pointsdesk/pointsdesk/internal/service/ledgerservice"
	"github.com/pointsdesk/pointsdesk/internal/service/pointsservice"
	"github.com/pointsdesk/pointsdesk/pkg/utils"
)

type LedgerService interface {
	List(ctx context.Context, filter ledgerservice.FilterSpec, page int) (*ledgerservice.Page, error)
}

type MutationService interface {
	Claim(ctx context.Context, customerCode int) (*domain.PointsRecord, error)
	AddWeight(ctx context.Context, customerCode int, grams decimal.Decimal) (*domain.PointsRecord, error)
	Edit(ctx context.Context, customerCode int, patch pointsservice.FieldPatch) (*domain.PointsRecord, error)
	Delete(ctx context.Context, customerCode int) error
}

type IngestService interface {
	Ingest(ctx context.Context, r io.Reader) (*ingestservice.Summary, error)
}

type ReportService interface {
	Export(ctx context.Context, filter ledgerservice.FilterSpec, w io.Writer) error
}

type PointsHandler struct {
	ledgerService LedgerService
	pointsService MutationService
	ingestService IngestService
	reportService ReportService
}

func New(ledger LedgerService, points MutationService, ingest IngestService, report ReportService) *PointsHandler {
	return &PointsHandler{
		ledgerService: ledger,
		pointsService: points,
		ingestService: ingest,
		reportService: report,
	}
}

const dateLayout = "2006-01-02"

func toRecordDTO(rec *domain.PointsRecord) dto.PointsRecordDTO {
	var date *string
	if rec.LastSalesDate != nil {
		d := rec.LastSalesDate.Format(dateLayout)
		date = &d
	}
	return dto.PointsRecordDTO{
		CustomerCode:    rec.CustomerCode,
		SerialNo:        rec.SerialNo,
		Address1:        rec.Address1,
		Address2:        rec.Address2,
		Address3:        rec.Address3,
		Address4:        rec.Address4,
		PinCode:         rec.PinCode,
		Phone:           rec.Phone,
		Mobile:          rec.Mobile,
		TotalPoints:     rec.TotalPoints.InexactFloat64(),
		ClaimedPoints:   rec.ClaimedPoints.InexactFloat64(),
		UnclaimedPoints: rec.UnclaimedPoints.InexactFloat64(),
		LastSalesDate:   date,
	}
}

// parseFilter builds a FilterSpec from query parameters; malformed
// numeric or date bounds are ignored rather than rejected, matching the
// permissive filter inputs of the admin table.
func parseFilter(r *http.Request) ledgerservice.FilterSpec {
	q := r.URL.Query()
	filter := ledgerservice.FilterSpec{
		CustomerCode: q.Get("customer_code"),
		Address1:     q.Get("address1"),
		Mobile:       q.Get("mobile"),
		SortBy:       ledgerservice.SortKey(q.Get("sort_by")),
		SortDesc:     q.Get("sort_order") == "DESC",
	}

	parseDec := func(name string) *decimal.Decimal {
		if v := q.Get(name); v != "" {
			if d, err := decimal.NewFromString(v); err == nil {
				d = domain.Round1(d)
				return &d
			}
		}
		return nil
	}
	filter.TotalMin = parseDec("total_min")
	filter.TotalMax = parseDec("total_max")
	filter.UnclaimedMin = parseDec("unclaimed_min")
	filter.UnclaimedMax = parseDec("unclaimed_max")

	parseDate := func(name string) *time.Time {
		if v := q.Get(name); v != "" {
			if d, err := time.Parse(dateLayout, v); err == nil {
				return &d
			}
		}
		return nil
	}
	filter.FromDate = parseDate("from_date")
	filter.ToDate = parseDate("to_date")

	return filter
}

func customerCode(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "code"))
}

// List godoc
//
//	@Summary		Browse the points ledger
//	@Description	Filtered, sorted, paginated view of the customer points table
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		json
//	@Param			customer_code	query		string	false	"Customer code substring"
//	@Param			address1		query		string	false	"Address substring"
//	@Param			mobile			query		string	false	"Mobile substring"
//	@Param			total_min		query		number	false	"Minimum total points"
//	@Param			total_max		query		number	false	"Maximum total points"
//	@Param			unclaimed_min	query		number	false	"Minimum unclaimed points"
//	@Param			unclaimed_max	query		number	false	"Maximum unclaimed points"
//	@Param			from_date		query		string	false	"Last sales date from (yyyy-mm-dd)"
//	@Param			to_date			query		string	false	"Last sales date to (yyyy-mm-dd)"
//	@Param			sort_by			query		string	false	"Sort key"
//	@Param			sort_order		query		string	false	"ASC or DESC"
//	@Param			page			query		int		false	"Page number"
//	@Success		200				{object}	dto.ListPointsResponseDTO
//	@Failure		401				{object}	utils.Response	"User not authorized"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/points [get]
func (h *PointsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.ledgerService.List(r.Context(), parseFilter(r), page)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load points ledger")
		return
	}

	records := make([]dto.PointsRecordDTO, len(result.Records))
	for i := range result.Records {
		records[i] = toRecordDTO(&result.Records[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ListPointsResponseDTO{
		Records:      records,
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		TotalRecords: result.TotalRecords,
	})
}

// Claim godoc
//
//	@Summary		Claim one point
//	@Description	Convert one unit of unclaimed points to claimed
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		int	true	"Customer code"
//	@Success		200		{object}	dto.PointsRecordDTO
//	@Failure		404		{object}	utils.Response	"Record not found"
//	@Failure		409		{object}	utils.Response	"No unclaimed points available"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/points/{code}/claim [post]
func (h *PointsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	code, err := customerCode(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer code")
		return
	}

	rec, err := h.pointsService.Claim(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, pointsservice.ErrRecordNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, pointsservice.ErrNoUnclaimedPoints):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toRecordDTO(rec))
}

// AddWeight godoc
//
//	@Summary		Credit points from weight
//	@Description	Convert grams to points at the fixed 10:1 ratio and credit the record
//	@Tags			Points
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			code	path		int						true	"Customer code"
//	@Param			request	body		dto.AddWeightRequestDTO	true	"Weight to credit"
//	@Success		200		{object}	dto.PointsRecordDTO
//	@Failure		404		{object}	utils.Response	"Record not found"
//	@Failure		422		{object}	utils.Response	"Invalid weight"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/points/{code}/weight [post]
func (h *PointsHandler) AddWeight(w http.ResponseWriter, r *http.Request) {
	code, err := customerCode(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer code")
		return
	}

	var req dto.AddWeightRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.pointsService.AddWeight(r.Context(), code, decimal.NewFromFloat(req.Grams))
	if err != nil {
		switch {
		case errors.Is(err, pointsservice.ErrRecordNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, pointsservice.ErrInvalidWeight):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toRecordDTO(rec))
}

// Edit godoc
//
//	@Summary		Edit a ledger record
//	@Description	Overwrite editable fields; the customer code is immutable
//	@Tags			Points
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			code	path		int							true	"Customer code"
//	@Param			request	body		dto.EditPointsRequestDTO	true	"Fields to overwrite"
//	@Success		200		{object}	dto.PointsRecordDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Record not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/points/{code} [patch]
func (h *PointsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	code, err := customerCode(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer code")
		return
	}

	var req dto.EditPointsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := pointsservice.FieldPatch{
		SerialNo: req.SerialNo,
		Address1: req.Address1,
		Address2: req.Address2,
		Address3: req.Address3,
		Address4: req.Address4,
		PinCode:  req.PinCode,
		Phone:    req.Phone,
		Mobile:   req.Mobile,
	}
	if req.TotalPoints != nil {
		d := decimal.NewFromFloat(*req.TotalPoints)
		patch.TotalPoints = &d
	}
	if req.ClaimedPoints != nil {
		d := decimal.NewFromFloat(*req.ClaimedPoints)
		patch.ClaimedPoints = &d
	}
	if req.LastSalesDate != nil {
		d, err := time.Parse(dateLayout, *req.LastSalesDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid last sales date")
			return
		}
		patch.LastSalesDate = &d
	}

	rec, err := h.pointsService.Edit(r.Context(), code, patch)
	if err != nil {
		if errors.Is(err, pointsservice.ErrRecordNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toRecordDTO(rec))
}

// Delete godoc
//
//	@Summary		Delete a ledger record
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		int	true	"Customer code"
//	@Success		200		{object}	utils.Response	"Record deleted"
//	@Failure		404		{object}	utils.Response	"Record not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/points/{code} [delete]
func (h *PointsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code, err := customerCode(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer code")
		return
	}

	if err := h.pointsService.Delete(r.Context(), code); err != nil {
		if errors.Is(err, pointsservice.ErrRecordNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Record deleted"})
}

// Upload godoc
//
//	@Summary		Upload a CSV points batch
//	@Description	Parse, reconcile and write a bulk CSV update; invalid rows are skipped
//	@Tags			Points
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"CSV file with header row"
//	@Success		200		{object}	dto.UploadResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing file or malformed CSV"
//	@Failure		422		{object}	utils.Response	"No valid rows"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/points/upload [post]
func (h *PointsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file selected")
		return
	}
	defer file.Close()

	summary, err := h.ingestService.Ingest(r.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, ingestservice.ErrParse):
			utils.RespondWithError(w, http.StatusBadRequest, "Error parsing CSV. Please check the file format.")
		case errors.Is(err, ingestservice.ErrNoValidRows):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid CSV data. Please check CUSTOMER CODE and NET WEIGHT.")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Error uploading data. Please try again.")
		}
		return
	}

	records := make([]dto.PointsRecordDTO, len(summary.Records))
	for i := range summary.Records {
		records[i] = toRecordDTO(&summary.Records[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UploadResponseDTO{
		BatchID:  summary.BatchID,
		Accepted: summary.Accepted,
		Skipped:  summary.Skipped,
		Inserted: summary.Inserted,
		Updated:  summary.Updated,
		Records:  records,
	})
}

// Report godoc
//
//	@Summary		Download the ledger report
//	@Description	CSV report of the currently filtered record set
//	@Tags			Points
//	@Security		BearerAuth
//	@Produce		text/csv
//	@Success		200	{string}	string			"CSV report"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/points/report [get]
func (h *PointsHandler) Report(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="points_table.csv"`)

	if err := h.reportService.Export(r.Context(), parseFilter(r), w); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}
}
