package get_shop_policy

import (
	"net/http"

	"github.com/dgarza/barberbook/internal/api/handlers"
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

// Handle GET /api/v1/shop/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPolicy(r.Context())
	if err != nil {
		h.logger.Error("GET /shop/policy - Failed to fetch policy: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shop/policy - Policy fetched")
	handlers.RespondJSON(w, http.StatusOK, result)
}
