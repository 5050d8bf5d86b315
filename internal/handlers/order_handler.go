package handlers

import (
	"cafe_pos/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type orderResponse struct {
	Lines     []models.OrderLine `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     string             `json:"total"`
	Currency  string             `json:"currency"`
}

func (h *APIHandler) orderView(lines []models.OrderLine) orderResponse {
	if lines == nil {
		lines = []models.OrderLine{}
	}
	return orderResponse{
		Lines:     lines,
		ItemCount: models.LinesQuantity(lines),
		Total:     models.LinesTotal(lines).StringFixed(2),
		Currency:  h.register.Currency(),
	}
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	c.JSON(http.StatusOK, h.orderView(h.register.Order()))
}

// AddOrderItem handles POST /api/order/items with {"item_id": n}.
func (h *APIHandler) AddOrderItem(c *gin.Context) {
	var req struct {
		ItemID int64 `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	lines, err := h.register.AddToOrder(c.Request.Context(), req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(lines))
}

// ChangeOrderQuantity handles PATCH /api/order/items/:id with {"delta": n}.
func (h *APIHandler) ChangeOrderQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	lines, err := h.register.ChangeQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(lines))
}

func (h *APIHandler) RemoveOrderItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lines, err := h.register.RemoveFromOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(lines))
}

func (h *APIHandler) ClearOrder(c *gin.Context) {
	if err := h.register.ClearOrder(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.orderView(nil))
}

type completeResponse struct {
	models.Sale
	Warning string `json:"warning,omitempty"`
}

// CompleteOrder answers 201 whenever the sale was stored, with a warning when
// the emptied order could not be saved.
func (h *APIHandler) CompleteOrder(c *gin.Context) {
	sale, err := h.register.CompleteOrder(c.Request.Context())
	if err != nil && sale.ID == 0 {
		respondError(c, err)
		return
	}
	resp := completeResponse{Sale: sale}
	if err != nil {
		h.logger.Error("sale stored but order not cleared", zap.Int64("sale_id", sale.ID), zap.Error(err))
		resp.Warning = "sale recorded but the cleared order could not be saved"
	}
	c.JSON(http.StatusCreated, resp)
}

// GetReceipt returns the receipt as JSON, or as plain text with ?format=text.
func (h *APIHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.register.Receipt()
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, receipt.Text())
		return
	}
	c.JSON(http.StatusOK, receipt)
}
