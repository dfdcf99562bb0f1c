package tenant

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resvio/bot-platform/pkg/logging"
)

// Handler provides HTTP endpoints for tenant configuration management.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a tenant config HTTP handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes returns a chi router with tenant admin routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{tenantID}/config", h.GetConfig)
	r.Put("/{tenantID}/config", h.UpdateConfig)
	return r
}

// GetConfig returns the configuration for a tenant.
// GET /tenants/{tenantID}/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if tenantID == "" {
		http.Error(w, `{"error": "tenant_id required"}`, http.StatusBadRequest)
		return
	}

	cfg, err := h.store.Get(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to get tenant config", "tenant_id", tenantID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		h.logger.Error("failed to encode tenant config", "tenant_id", tenantID, "error", err)
	}
}

// UpdateConfigRequest is the request body for updating tenant config.
// Partial updates are supported: absent fields keep their current value.
type UpdateConfigRequest struct {
	Name            string     `json:"name,omitempty"`
	Category        string     `json:"category,omitempty"`
	Language        string     `json:"language,omitempty"`
	Timezone        string     `json:"timezone,omitempty"`
	ContactPhone    string     `json:"contact_phone,omitempty"`
	Hours           *WeekHours `json:"hours,omitempty"`
	SlotStepMinutes *int       `json:"slot_step_minutes,omitempty"`
	Services        []Service  `json:"services,omitempty"`
	Products        []Product  `json:"products,omitempty"`
	Topics          []Topic    `json:"topics,omitempty"`
	Events          []Event    `json:"events,omitempty"`
	DeliveryMenu    []MenuItem `json:"delivery_menu,omitempty"`
	DeliveryFeeText string     `json:"delivery_fee_text,omitempty"`
}

// UpdateConfig creates or updates a tenant's configuration.
// PUT /tenants/{tenantID}/config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if tenantID == "" {
		http.Error(w, `{"error": "tenant_id required"}`, http.StatusBadRequest)
		return
	}

	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	cfg, err := h.store.Get(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to get tenant config", "tenant_id", tenantID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	if req.Name != "" {
		cfg.Name = req.Name
	}
	if req.Category != "" {
		cfg.Category = req.Category
	}
	if req.Language != "" {
		cfg.Language = req.Language
	}
	if req.Timezone != "" {
		cfg.Timezone = req.Timezone
	}
	if req.ContactPhone != "" {
		cfg.ContactPhone = req.ContactPhone
	}
	if req.Hours != nil {
		cfg.Hours = *req.Hours
	}
	if req.SlotStepMinutes != nil {
		cfg.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.Services != nil {
		cfg.Services = req.Services
	}
	if req.Products != nil {
		cfg.Products = req.Products
	}
	if req.Topics != nil {
		cfg.Topics = req.Topics
	}
	if req.Events != nil {
		cfg.Events = req.Events
	}
	if req.DeliveryMenu != nil {
		cfg.DeliveryMenu = req.DeliveryMenu
	}
	if req.DeliveryFeeText != "" {
		cfg.DeliveryFeeText = req.DeliveryFeeText
	}

	if err := h.store.Set(r.Context(), cfg); err != nil {
		h.logger.Error("failed to save tenant config", "tenant_id", tenantID, "error", err)
		http.Error(w, `{"error": "failed to save config"}`, http.StatusInternalServerError)
		return
	}

	h.logger.Info("tenant config updated", "tenant_id", tenantID, "name", cfg.Name)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		h.logger.Error("failed to encode tenant config", "tenant_id", tenantID, "error", err)
	}
}
