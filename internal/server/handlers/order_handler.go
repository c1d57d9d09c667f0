package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/repository/mongodb"
	"github.com/Real-Lux/Farm-App-sub001/internal/service/orders"
)

// OrderHandler serves quote and order placement requests.
type OrderHandler struct {
	svc    *orders.Service
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc *orders.Service, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

// Quote prices a selection set without persisting anything.
func (h *OrderHandler) Quote(c *gin.Context) {
	var req orders.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quote payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.svc.Quote(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "failed to price order")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PlaceOrder prices, persists and confirms an order.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req orders.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid order payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "failed to place order")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// respondError maps the service's recoverable errors onto HTTP statuses; the
// caller can fix all of them by adjusting the request.
func (h *OrderHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, orders.ErrInvalidQuantity),
		errors.Is(err, orders.ErrDuplicateSelection),
		errors.Is(err, orders.ErrEmptyOrder):
		h.logger.Warn("rejected order request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrUnknownLot), errors.Is(err, mongodb.ErrNotFound):
		h.logger.Warn("order references unknown entity", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
