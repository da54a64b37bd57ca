package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/fastprodman/playerwallet/internal/repos/players"
	"github.com/fastprodman/playerwallet/internal/repos/transactions"
	"github.com/fastprodman/playerwallet/internal/services/ledger"
	"github.com/go-chi/chi/v5"
)

// LedgerService is the engine surface the handlers need; the concrete
// implementation is *ledger.LedgerService.
type LedgerService interface {
	GetBalance(ctx context.Context, playerID string) (int64, error)
	PlaceBet(ctx context.Context, playerID string, value int64) (ledger.BetResult, error)
	Win(ctx context.Context, playerID string, value int64) (ledger.BetResult, error)
	Rollback(ctx context.Context, playerID, txnID string, value int64) (ledger.RollbackResult, error)
}

// HandlerProvider wraps a LedgerService and exposes HTTP handlers.
type HandlerProvider struct {
	svc LedgerService
}

// NewHandler returns a new Handler provider.
func NewHandler(svc LedgerService) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		// As best-effort, write a minimal error payload if headers not sent
		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCode writes the wallet's business outcome payloads, e.g.
// {"code":"Player not found!"} or {"code":"OK","balance":"10.50"}.
func writeCode(w http.ResponseWriter, status int, code string, extra map[string]any) {
	payload := map[string]any{"code": code}
	for k, v := range extra {
		payload[k] = v
	}

	writeJSON(w, status, payload)
}

// formatAmount renders cents as a decimal string with 2 digits.
func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// parseAmountCents converts a decimal string with up to 2 fractional digits into cents.
func parseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount required")
	}
	neg := false
	if s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount")
	}
	intPart := parts[0]
	frac := "00"
	if len(parts) == 2 {
		if len(parts[1]) > 2 {
			return 0, fmt.Errorf("amount supports up to 2 decimals")
		}
		frac = parts[1] + strings.Repeat("0", 2-len(parts[1]))
	}
	ip, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount integer")
	}
	fp, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount fractional")
	}
	total := ip*100 + fp
	if neg {
		total = -total
	}
	if total <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}
	return total, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	// Limit body size; disallow unknown fields
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

type betRequest struct {
	Player string `json:"player"`
	Value  string `json:"value"`
}

type rollbackRequest struct {
	Player string `json:"player"`
	Txn    string `json:"txn"`
	Value  string `json:"value"`
}

// --- Handlers ---

// GetBalanceHandler handles GET /balance/{playerId}
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "missing playerId in path")
		return
	}

	bal, err := h.svc.GetBalance(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, players.ErrPlayerNotFound) {
			writeCode(w, http.StatusNotFound, "Player not found!", nil)
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"player":  playerID,
		"balance": formatAmount(bal),
	})
}

// PlaceBetHandler handles POST /bet
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	var req betRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Player == "" {
		writeError(w, http.StatusBadRequest, "player required")
		return
	}

	amountCents, err := parseAmountCents(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.PlaceBet(r.Context(), req.Player, amountCents)
	if err != nil {
		if errors.Is(err, players.ErrPlayerNotFound) {
			writeCode(w, http.StatusNotFound, "Player not found!", nil)
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if res.Code == ledger.CodeInsufficientFunds {
		writeCode(w, http.StatusOK, "Insufficient funds", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"player":  res.PlayerID,
		"balance": formatAmount(res.BalanceMinor),
		"txn":     res.TransactionID,
	})
}

// WinHandler handles POST /win
func (h *HandlerProvider) WinHandler(w http.ResponseWriter, r *http.Request) {
	var req betRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Player == "" {
		writeError(w, http.StatusBadRequest, "player required")
		return
	}

	amountCents, err := parseAmountCents(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Win(r.Context(), req.Player, amountCents)
	if err != nil {
		if errors.Is(err, players.ErrPlayerNotFound) {
			writeCode(w, http.StatusNotFound, "Player not found!", nil)
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"player":  res.PlayerID,
		"balance": formatAmount(res.BalanceMinor),
		"txn":     res.TransactionID,
	})
}

// RollbackHandler handles POST /rollback
func (h *HandlerProvider) RollbackHandler(w http.ResponseWriter, r *http.Request) {
	var req rollbackRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Player == "" || req.Txn == "" {
		writeError(w, http.StatusBadRequest, "player and txn required")
		return
	}

	amountCents, err := parseAmountCents(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Rollback(r.Context(), req.Player, req.Txn, amountCents)
	if err != nil {
		if errors.Is(err, transactions.ErrTransactionNotFound) {
			writeCode(w, http.StatusNotFound, "Transaction not found!", nil)
			return
		}

		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch res.Code {
	case ledger.CodeInvalid:
		writeCode(w, http.StatusOK, "Invalid", nil)
	case ledger.CodeInsufficientFundsToRollback:
		writeCode(w, http.StatusOK, "Insufficient funds to rollback", nil)
	default:
		writeCode(w, http.StatusOK, "OK", map[string]any{
			"balance": formatAmount(res.BalanceMinor),
		})
	}
}
