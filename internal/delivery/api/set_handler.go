package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/service"
	"github.com/aliskhannn/trivia-quiz-bot/internal/validator"
)

// HeaderUserID optionally identifies the caller creating a set.
const HeaderUserID = "X-User-ID"

// SetHandler handles trivia set management endpoints.
type SetHandler struct {
	trivia  TriviaService
	results ResultService
	logger  *zap.Logger
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(trivia TriviaService, results ResultService, logger *zap.Logger) *SetHandler {
	return &SetHandler{trivia: trivia, results: results, logger: logger}
}

// List handles GET /api/v1/sets.
func (h *SetHandler) List(c *gin.Context) {
	sets, err := h.trivia.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	Success(c, http.StatusOK, gin.H{"sets": toSetSummaries(sets)})
}

// Get handles GET /api/v1/sets/:id.
func (h *SetHandler) Get(c *gin.Context) {
	id, ok := parseSetID(c)
	if !ok {
		return
	}

	set, err := h.trivia.Get(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	Success(c, http.StatusOK, toSetResponse(set))
}

// Create handles POST /api/v1/sets.
func (h *SetHandler) Create(c *gin.Context) {
	var req service.SetInput
	if fields := validator.Bind(c, &req); fields != nil {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, fields)
		return
	}

	var ownerID int64
	if v := c.GetHeader(HeaderUserID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{HeaderUserID: "must be a positive integer"})
			return
		}
		ownerID = id
	}

	set, err := h.trivia.Create(c.Request.Context(), req, ownerID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	Success(c, http.StatusCreated, toSetResponse(set))
}

// Delete handles DELETE /api/v1/sets/:id.
func (h *SetHandler) Delete(c *gin.Context) {
	id, ok := parseSetID(c)
	if !ok {
		return
	}

	if err := h.trivia.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, err)
		return
	}

	Success(c, http.StatusOK, gin.H{"deleted": id})
}

// Top handles GET /api/v1/sets/:id/top?limit=N.
func (h *SetHandler) Top(c *gin.Context) {
	id, ok := parseSetID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultTopSize)))
	if err != nil || limit <= 0 || limit > 100 {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"limit": "must be between 1 and 100"})
		return
	}

	entries, err := h.results.Top(c.Request.Context(), id, limit)
	if err != nil {
		h.internalError(c, err)
		return
	}

	Success(c, http.StatusOK, gin.H{"entries": toLeaderboard(entries)})
}

func (h *SetHandler) serviceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		FailWithFields(c, http.StatusBadRequest, ErrValidation, verr.Fields)
	case errors.Is(err, service.ErrDuplicateQuestionID):
		FailWithFields(c, http.StatusBadRequest, ErrDuplicateID, map[string]string{"questions": err.Error()})
	case errors.Is(err, service.ErrSetNotFound):
		Fail(c, http.StatusNotFound, ErrNotFound)
	default:
		h.internalError(c, err)
	}
}

func (h *SetHandler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	Fail(c, http.StatusInternalServerError, ErrInternal)
}

func parseSetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Fail(c, http.StatusBadRequest, ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
