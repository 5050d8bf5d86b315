package handlers

import (
	"cafe_pos/internal/services"
	"cafe_pos/pkg/whatsapp"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WhatsAppHandler answers owner commands sent to the shop's WhatsApp number.
type WhatsAppHandler struct {
	whatsappService services.WhatsAppService
	register        services.Register
	logger          *zap.Logger
}

func NewWhatsAppHandler(whatsappService services.WhatsAppService, register services.Register, logger *zap.Logger) *WhatsAppHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppHandler{
		whatsappService: whatsappService,
		register:        register,
		logger:          logger,
	}
}

type WebhookRequest struct {
	SenderID  string `json:"sender_id"`
	ChatID    string `json:"chat_id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Pushname  string `json:"pushname"`
	Message   struct {
		Text string `json:"text"`
		ID   string `json:"id"`
	} `json:"message"`
}

func (h *WhatsAppHandler) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	// Extract phone number from 'from' field (format: 628123456789@s.whatsapp.net)
	phoneNumber := req.From
	if phoneNumber == "" {
		phoneNumber = req.SenderID
	}
	phoneNumber = whatsapp.NormalizePhone(phoneNumber)

	// Only the owner may query the register
	if phoneNumber == "" || phoneNumber != whatsapp.NormalizePhone(h.whatsappService.OwnerPhone()) {
		h.logger.Warn("ignored message from unknown sender", zap.String("phone", phoneNumber))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	response := h.processCommand(req.Message.Text)

	if err := h.whatsappService.SendMessage(c.Request.Context(), phoneNumber, response); err != nil {
		h.logger.Error("failed to send whatsapp reply", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// SendDailyReport pushes the report for ?date= (default today) to the owner.
func (h *WhatsAppHandler) SendDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.register.Today()
	}
	report, err := h.register.Ledger().DailyReport(date)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.whatsappService.SendDailyReport(c.Request.Context(), report); err != nil {
		h.logger.Error("failed to send daily report", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "date": date})
}

func (h *WhatsAppHandler) processCommand(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "❌ Empty message. Type /help for available commands."
	}
	if !strings.HasPrefix(message, "/") {
		return "🤖 Please use a command. Type /help for available commands."
	}

	parts := strings.Fields(message)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help":
		return h.getHelpMessage()
	case "/menu":
		return h.getMenu(args)
	case "/report", "/daily_report":
		return h.getReport(args)
	case "/order":
		return services.FormatOrder(h.register.Order(), h.register.Currency())
	default:
		return "❌ Unknown command. Type /help for available commands."
	}
}

func (h *WhatsAppHandler) getHelpMessage() string {
	return `📱 *Available Commands:*

/menu [category] - Show the menu
/order - Show the order being built
/report [YYYY-MM-DD] - Daily sales report (default today)
/help - Show this help message`
}

func (h *WhatsAppHandler) getMenu(args []string) string {
	category := strings.Join(args, " ")
	items := h.register.Catalog().List(category)
	if len(items) == 0 && category != "" {
		return fmt.Sprintf("📋 No items in category %q.", category)
	}
	return services.FormatMenu(items, h.register.Currency())
}

func (h *WhatsAppHandler) getReport(args []string) string {
	date := h.register.Today()
	if len(args) > 0 {
		date = args[0]
	}
	report, err := h.register.Ledger().DailyReport(date)
	if err != nil {
		if services.IsValidation(err) {
			return "❌ Invalid date format. Use YYYY-MM-DD"
		}
		return "❌ Failed to build report: " + err.Error()
	}
	return services.FormatDailyReport(report, h.register.Currency())
}
