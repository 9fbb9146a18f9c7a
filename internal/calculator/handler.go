package calculator

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"admin-panel/internal/auth"
	"admin-panel/internal/models"

	"go.uber.org/zap"
)

// History stores evaluated expressions per user.
type History interface {
	Save(ctx context.Context, c *models.Calculation) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Calculation, error)
}

type CalculateRequest struct {
	Expression string `json:"expression"`
}

type CalculateResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

type PressRequest struct {
	State State  `json:"state"`
	Key   string `json:"key"`
}

// CalculateHandler evaluates an expression without storing it. Evaluation
// failures are part of the result, not a request error.
func CalculateHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		result := Result(req.Expression)
		logger.Debug("calculated", zap.String("expression", req.Expression), zap.String("result", result))
		writeJSON(w, http.StatusOK, CalculateResponse{Expression: req.Expression, Result: result})
	}
}

func PressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Key == "" {
			http.Error(w, "key required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, req.State.Press(req.Key))
	}
}

// SaveCalculationHandler evaluates an expression and records it in the
// caller's history. Only expressions that evaluate are stored.
func SaveCalculationHandler(history History, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		v, err := Evaluate(req.Expression)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		calc := &models.Calculation{
			UserID:     userID,
			Expression: req.Expression,
			Result:     Format(v),
		}
		if err := history.Save(r.Context(), calc); err != nil {
			logger.Error("failed to save calculation", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to save calculation", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, calc)
	}
}

func ListCalculationsHandler(history History, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		calcs, err := history.ListByUser(r.Context(), userID, limit)
		if err != nil {
			logger.Error("failed to list calculations", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, calcs)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
