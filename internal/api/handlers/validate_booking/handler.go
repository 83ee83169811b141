package validate_booking

import (
	"errors"
	"net/http"

	"github.com/dgarza/barberbook/internal/api/handlers"
	validateBooking "github.com/dgarza/barberbook/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStart       = "invalid proposedStart, expected RFC 3339 timestamp"
	msgInvalidAction      = "invalid action, expected create, cancel or reschedule"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
//
// Always responds 200 with an allowed/violation body when the request
// itself is well-formed; a rule violation is a result, not an HTTP error.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid proposedStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, validateBooking.ErrInvalidInput) {
			h.logger.Warn("POST /bookings/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAction)
			return
		}
		h.logger.Error("POST /bookings/validate - Failed to validate: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/validate - Validated: action=%s, allowed=%t", req.Action, result.Allowed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
