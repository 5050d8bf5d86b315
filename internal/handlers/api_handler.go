package handlers

import (
	"cafe_pos/internal/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves the point of sale JSON API.
type APIHandler struct {
	register services.Register
	logger   *zap.Logger
}

func NewAPIHandler(register services.Register, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{register: register, logger: logger}
}

// Health answers 503 when the store cannot be reached.
func (h *APIHandler) Health(c *gin.Context) {
	if err := h.register.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("store health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError writes err with the status matching its code.
func respondError(c *gin.Context, err error) {
	code := services.CodeOf(err)
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch code {
	case services.CodeValidation, services.CodeFormat:
		status = http.StatusBadRequest
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeEmptyOrder:
		status = http.StatusConflict
	}
	if code != services.CodeInternal {
		var posErr *services.POSError
		if errors.As(err, &posErr) {
			message = posErr.Message
		}
	} else {
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{"error": message, "code": code.String()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": services.CodeValidation.String()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
