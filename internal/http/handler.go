package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/page"
)

type Handler struct {
	pages  *page.Store
	logger *slog.Logger
}

func NewHandler(pages *page.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{pages: pages, logger: logger}
}

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

type submitFailureResponse struct {
	Error         string    `json:"error"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Notice        string    `json:"notice"`
	View          page.View `json:"view"`
}

type adjustRequest struct {
	Delta *int `json:"delta"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.ParseInt(chi.URLParam(r, "restaurantId"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	s, err := h.pages.Create(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant not found")
			return
		}
		h.logger.Error("open page session", "restaurant_id", restaurantID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, s.View())
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) AdjustItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	mealID, err := strconv.ParseInt(chi.URLParam(r, "mealId"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid meal id")
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Delta == nil {
		writeError(w, r, http.StatusBadRequest, "body must be {\"delta\": <int>}")
		return
	}

	if _, err := s.Adjust(mealID, *req.Delta); err != nil {
		if errors.Is(err, page.ErrItemNotFound) {
			writeError(w, r, http.StatusNotFound, "meal not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	err := s.Submit(r.Context())
	var subErr *cart.SubmissionError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.View())
	case errors.Is(err, cart.ErrSubmissionInFlight):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, cart.ErrEmptySnapshot):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &subErr):
		writeJSON(w, http.StatusBadGateway, submitFailureResponse{
			Error:         "cart service rejected the update",
			CorrelationID: middleware.GetCorrelationID(r.Context()),
			Notice:        cart.FailureNotice,
			View:          s.View(),
		})
	default:
		h.logger.Error("submit cart", "session_id", s.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) RefreshCartCount(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.RefreshCartCount(r.Context()); err != nil {
		h.logger.Warn("cart count refresh failed", "session_id", s.ID, "error", err)
		writeError(w, r, http.StatusBadGateway, "cart count unavailable")
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*page.Session, bool) {
	s, err := h.pages.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:         msg,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}
