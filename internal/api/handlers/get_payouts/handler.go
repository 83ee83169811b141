package get_payouts

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dgarza/barberbook/internal/api/handlers"
)

const (
	msgInvalidBarberID = "invalid barber ID"
)

type Handler struct {
	service PayoutService
	logger  Logger
}

func NewHandler(service PayoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/payouts - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	payouts, err := h.service.ListByBarber(r.Context(), barberID)
	if err != nil {
		h.logger.Error("GET /barbers/{id}/payouts - Failed to list payouts: barber_id=%d, error=%v",
			barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbers/{id}/payouts - Payouts listed: barber_id=%d, count=%d", barberID, len(payouts))
	handlers.RespondJSON(w, http.StatusOK, FromDomainPayouts(payouts))
}
