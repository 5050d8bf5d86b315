package handlers

import (
	"cafe_pos/internal/models"
	"cafe_pos/internal/services"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxImportSize = 1 << 20

const menuExportFileName = "moonicafe-menu.json"

type menuItemRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *decimal.Decimal `json:"price"`
}

func (r menuItemRequest) price() (decimal.Decimal, error) {
	if r.Price == nil {
		return decimal.Zero, services.NewValidationError("price is required")
	}
	return *r.Price, nil
}

// ListMenu handles GET /api/menu?category=&q=.
func (h *APIHandler) ListMenu(c *gin.Context) {
	category := c.Query("category")
	query := strings.TrimSpace(c.Query("q"))
	catalog := h.register.Catalog()

	var items []models.MenuItem
	if query == "" {
		items = catalog.List(category)
	} else {
		items = []models.MenuItem{}
		for _, item := range catalog.Search(query) {
			if category == "" || category == models.CategoryAll || item.Category == category {
				items = append(items, item)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *APIHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.register.Catalog().Categories(),
		"defaults":   services.DefaultCategories,
	})
}

func (h *APIHandler) GetMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.register.Catalog().Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	price, err := req.price()
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.register.Catalog().Add(c.Request.Context(), req.Name, req.Category, price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *APIHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	price, err := req.price()
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.register.Catalog().Update(c.Request.Context(), id, req.Name, req.Category, price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.register.Catalog().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// ExportMenu downloads the menu as moonicafe-menu.json.
func (h *APIHandler) ExportMenu(c *gin.Context) {
	data, err := h.register.Catalog().Export()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", menuExportFileName))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportMenu replaces the menu with an uploaded file (form field "file") or
// the raw request body.
func (h *APIHandler) ImportMenu(c *gin.Context) {
	data, err := readImport(c)
	if err != nil {
		badRequest(c, "Error reading menu file")
		return
	}

	n, err := h.register.Catalog().Import(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("menu replaced by import", zap.Int("items", n), zap.String("request_id", requestID(c)))
	c.JSON(http.StatusOK, gin.H{"status": "imported", "count": n})
}

func readImport(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportSize))
	}
	return io.ReadAll(c.Request.Body)
}
