package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spendtrack/internal/core"
)

type ingestRequest struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion,omitempty"`
}

type transactionResponse struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"user_id"`
	CreatedAt   string  `json:"created_at"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Merchant    string  `json:"merchant"`
	Category    string  `json:"category"`
	Emotion     string  `json:"emotion,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	RawInput    string  `json:"raw_input"`
}

type listResponse struct {
	Items []transactionResponse `json:"items"`
}

type windowResponse struct {
	Kind  string `json:"kind"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// summaryResponse always carries the same key set: empty windows and
// on-budget months serialize with the same shape as populated ones.
type summaryResponse struct {
	Window         windowResponse   `json:"window"`
	TotalSpent     string           `json:"total_spent"`
	TotalCents     int64            `json:"total_cents"`
	ByCategory     map[string]int64 `json:"by_category_cents"`
	BudgetDelta    map[string]int64 `json:"budget_delta_cents"`
	OverUnderTotal int64            `json:"over_under_total_cents"`
	Count          int              `json:"count"`
	Insight        string           `json:"insight"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tx, err := s.tracker.Ingest(r.Context(), s.userID(r), req.Text, req.Emotion)
	if err != nil {
		s.writeTrackerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.tracker.List(r.Context(), s.userID(r), window)
	if err != nil {
		s.writeTrackerError(w, r, err)
		return
	}

	out := listResponse{Items: make([]transactionResponse, 0, len(items))}
	for _, tx := range items {
		out.Items = append(out.Items, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.tracker.Summarize(r.Context(), s.userID(r), window)
	if err != nil {
		s.writeTrackerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.tracker.Delete(r.Context(), s.userID(r), id); err != nil {
		s.writeTrackerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userID resolves the acting user: X-User-ID header, then the user query
// parameter, then the configured default.
func (s *Server) userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-User-ID")); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("user")); id != "" {
		return id
	}
	return s.defaultUser
}

// windowFromQuery builds the reporting window: window=today selects the
// current day; year and month select that month; the default is the
// current month.
func windowFromQuery(r *http.Request) (core.Window, error) {
	q := r.URL.Query()

	if q.Get("window") == "today" {
		return core.DayWindow(time.Now()), nil
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := q.Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1970 || n > 9999 {
			return core.Window{}, errors.New("invalid year")
		}
		year = n
	}
	if raw := q.Get("month"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 12 {
			return core.Window{}, errors.New("invalid month: must be 1-12")
		}
		month = n
	}

	return core.MonthWindow(year, time.Month(month)), nil
}

func (s *Server) writeTrackerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount), errors.Is(err, core.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		UserID:      tx.UserID,
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
		AmountCents: tx.Amount.Cents,
		Amount:      tx.Amount.Amount(),
		Currency:    tx.Currency,
		Merchant:    tx.Merchant,
		Category:    string(tx.Category),
		Emotion:     tx.Emotion,
		Notes:       tx.Notes,
		RawInput:    tx.RawInput,
	}
}

func toSummaryResponse(s core.Summary) summaryResponse {
	byCategory := make(map[string]int64, len(s.ByCategory))
	for cat, m := range s.ByCategory {
		byCategory[string(cat)] = m.Cents
	}
	delta := make(map[string]int64, len(s.BudgetDelta))
	for cat, m := range s.BudgetDelta {
		delta[string(cat)] = m.Cents
	}
	return summaryResponse{
		Window: windowResponse{
			Kind:  string(s.Window.Kind),
			Start: s.Window.Start.Format(time.RFC3339),
			End:   s.Window.End.Format(time.RFC3339),
		},
		TotalSpent:     s.TotalSpent.Format(),
		TotalCents:     s.TotalSpent.Cents,
		ByCategory:     byCategory,
		BudgetDelta:    delta,
		OverUnderTotal: s.OverUnderTotal.Cents,
		Count:          s.Count,
		Insight:        s.Insight,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
