package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/errors"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

type cardJSON struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Size  card.SizeHint `json:"size"`
}

type orderJSON struct {
	Scope string   `json:"scope"`
	Order []string `json:"order"`
}

type putOrderRequest struct {
	Order []string `json:"order"`
}

type moveRequest struct {
	Card string `json:"card"`
	To   *int   `json:"to"`
}

type errorJSON struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	b, err := s.mount(r, false)
	if err != nil {
		writeError(w, err)
		return
	}
	cards := b.Cards()
	out := make([]cardJSON, len(cards))
	for i, c := range cards {
		out[i] = cardJSON{ID: c.ID, Title: c.Title, Size: c.Size}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateCardID(req.Card); err != nil {
		writeError(w, err)
		return
	}
	if req.To == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidIndex, "missing target index"))
		return
	}

	s.moveMu.Lock()
	defer s.moveMu.Unlock()

	b, err := s.mount(r, true)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := b.MoveCard(r.Context(), req.Card, *req.To); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderJSON{Scope: b.Scope(), Order: b.Order()})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	if err := errors.ValidateScope(scope); err != nil {
		writeError(w, err)
		return
	}
	ids := s.orders.Load(r.Context(), scope)
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, orderJSON{Scope: scope, Order: ids})
}

func (s *Server) handlePutOrder(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	if err := errors.ValidateScope(scope); err != nil {
		writeError(w, err)
		return
	}
	var req putOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Order == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing order"))
		return
	}
	if err := errors.ValidateOrder(req.Order); err != nil {
		writeError(w, err)
		return
	}
	s.orders.Save(r.Context(), scope, req.Order)
	writeJSON(w, http.StatusOK, orderJSON{Scope: scope, Order: req.Order})
}

// =============================================================================
// Encoding
// =============================================================================

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorJSON{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

// statusFor maps coded errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
