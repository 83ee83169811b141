package preview_payout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dgarza/barberbook/internal/api/handlers"
	previewPayout "github.com/dgarza/barberbook/internal/usecase/preview_payout"
)

const (
	msgInvalidBarberID     = "invalid barber ID"
	msgMissingPeriod       = "startDate and endDate query parameters are required"
	msgInvalidPeriod       = "invalid period, expected YYYY-MM-DD dates"
	msgBarberNotConfigured = "barber has no commission rates configured"
)

type Handler struct {
	useCase PreviewPayoutUseCase
	logger  Logger
}

func NewHandler(useCase PreviewPayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/payouts/preview
// Query params: startDate, endDate (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/payouts/preview - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /barbers/{id}/payouts/preview - Missing period: barber_id=%d", barberID)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	useCaseReq, err := ToUseCaseRequest(barberID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/payouts/preview - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, previewPayout.ErrBarberNotConfigured):
			h.logger.Warn("GET /barbers/{id}/payouts/preview - Barber not configured: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotConfigured)

		case errors.Is(err, previewPayout.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/payouts/preview - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /barbers/{id}/payouts/preview - Failed to preview: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/payouts/preview - Preview calculated: barber_id=%d, amount=%.2f",
		barberID, result.CalculatedAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
