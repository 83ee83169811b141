package create_payout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dgarza/barberbook/internal/api/handlers"
	createPayout "github.com/dgarza/barberbook/internal/usecase/create_payout"
)

const (
	msgInvalidBarberID      = "invalid barber ID"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidPeriod        = "invalid period, expected YYYY-MM-DD dates"
	msgBarberNotConfigured  = "barber has no commission rates configured"
	msgOverlappingPayout    = "period overlaps an existing payout, set force to proceed"
	msgOverrideNoteRequired = "override note is required when paid amount differs from calculated amount"
	msgNothingToPay         = "no unsettled revenue in period"
)

type Handler struct {
	useCase CreatePayoutUseCase
	logger  Logger
}

func NewHandler(useCase CreatePayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/barbers/{barberId}/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/payouts - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req CreatePayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers/{id}/payouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(barberID)
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/payouts - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPayout.ErrBarberNotConfigured):
			h.logger.Warn("POST /barbers/{id}/payouts - Barber not configured: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotConfigured)

		case errors.Is(err, createPayout.ErrOverlappingPayout):
			h.logger.Warn("POST /barbers/{id}/payouts - Overlapping payout: barber_id=%d", barberID)
			handlers.RespondError(w, http.StatusConflict, msgOverlappingPayout)

		case errors.Is(err, createPayout.ErrOverrideNoteRequired):
			h.logger.Warn("POST /barbers/{id}/payouts - Override note required: barber_id=%d", barberID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOverrideNoteRequired)

		case errors.Is(err, createPayout.ErrNothingToPay):
			h.logger.Warn("POST /barbers/{id}/payouts - Nothing to pay: barber_id=%d", barberID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNothingToPay)

		case errors.Is(err, createPayout.ErrInvalidInput):
			h.logger.Warn("POST /barbers/{id}/payouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /barbers/{id}/payouts - Failed to create payout: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /barbers/{id}/payouts - Payout created: payout_id=%d, barber_id=%d, paid=%.2f, calculated=%.2f",
		result.ID, barberID, result.PaidAmount, result.CalculatedAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
