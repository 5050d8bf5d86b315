package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterOptions collects what NewRouter wires together.
type RouterOptions struct {
	API            *APIHandler
	WhatsApp       *WhatsAppHandler
	ManagerPINHash string
	Logger         *zap.Logger
}

func NewRouter(opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestID(), Logging(logger), Recovery(logger))

	api := opts.API
	router.GET("/healthz", api.Health)

	manager := ManagerPIN(opts.ManagerPINHash)

	v1 := router.Group("/api")
	{
		menu := v1.Group("/menu")
		menu.GET("", api.ListMenu)
		menu.GET("/categories", api.ListCategories)
		menu.GET("/export", api.ExportMenu)
		menu.GET("/:id", api.GetMenuItem)
		menu.POST("", manager, api.CreateMenuItem)
		menu.PUT("/:id", manager, api.UpdateMenuItem)
		menu.DELETE("/:id", manager, api.DeleteMenuItem)
		menu.POST("/import", manager, api.ImportMenu)

		order := v1.Group("/order")
		order.GET("", api.GetOrder)
		order.DELETE("", api.ClearOrder)
		order.POST("/items", api.AddOrderItem)
		order.PATCH("/items/:id", api.ChangeOrderQuantity)
		order.DELETE("/items/:id", api.RemoveOrderItem)
		order.POST("/complete", api.CompleteOrder)
		order.GET("/receipt", api.GetReceipt)

		sales := v1.Group("/sales")
		sales.GET("", api.ListSales)
		sales.GET("/report", api.GetDailyReport)
		sales.GET("/export", api.ExportSales)

		if opts.WhatsApp != nil {
			v1.POST("/whatsapp/webhook", opts.WhatsApp.HandleWebhook)
			v1.POST("/whatsapp/daily-report", manager, opts.WhatsApp.SendDailyReport)
		}
	}

	return router
}
