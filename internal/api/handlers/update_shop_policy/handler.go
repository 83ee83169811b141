package update_shop_policy

import (
	"errors"
	"net/http"

	"github.com/dgarza/barberbook/internal/api/handlers"
	"github.com/dgarza/barberbook/internal/service/settings"
	"github.com/dgarza/barberbook/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shop/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shop/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePolicy(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			h.logger.Warn("PUT /shop/policy - Invalid policy data: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /shop/policy - Failed to update policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /shop/policy - Policy updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
