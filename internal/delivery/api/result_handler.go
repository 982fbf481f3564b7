package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

// ResultHandler serves recorded quiz results.
type ResultHandler struct {
	results ResultService
	logger  *zap.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results ResultService, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{results: results, logger: logger}
}

// History handles GET /api/v1/users/:id/results?limit=N.
func (h *ResultHandler) History(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		Fail(c, http.StatusBadRequest, ErrInvalidID)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit <= 0 || limit > 100 {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"limit": "must be between 1 and 100"})
		return
	}

	results, err := h.results.History(c.Request.Context(), userID, limit)
	if err != nil {
		_ = c.Error(err)
		Fail(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	Success(c, http.StatusOK, gin.H{"results": toResults(results)})
}
