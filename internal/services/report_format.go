package services

import (
	"cafe_pos/internal/models"
	"fmt"
	"strings"
)

// FormatSaleMessage renders a completed sale as a chat message.
func FormatSaleMessage(sale models.Sale, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 Sale #%d (%s %s)\n", sale.ID, sale.Date, sale.Time)
	for _, line := range sale.Items {
		fmt.Fprintf(&b, "• %s x%d = %s\n", line.Name, line.Quantity, models.FormatAmount(line.Subtotal(), currency))
	}
	fmt.Fprintf(&b, "Total: %s", models.FormatAmount(sale.Total, currency))
	return b.String()
}

// FormatDailyReport renders the summary of one day's sales as a chat message.
func FormatDailyReport(report models.DailyReport, currency string) string {
	if report.Summary.OrderCount == 0 {
		return fmt.Sprintf("📊 No sales for %s.", report.Date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Daily Sales Report %s\n\n", report.Date)
	fmt.Fprintf(&b, "Total Orders: %d\n", report.Summary.OrderCount)
	fmt.Fprintf(&b, "Total Revenue: %s\n", models.FormatAmount(report.Summary.TotalRevenue, currency))
	fmt.Fprintf(&b, "Items Sold: %d\n", report.Summary.TotalItemsSold)
	fmt.Fprintf(&b, "Average Order: %s", models.FormatAmount(report.Summary.AverageOrderValue, currency))
	return b.String()
}

// FormatMenu lists menu items grouped in catalog order.
func FormatMenu(items []models.MenuItem, currency string) string {
	if len(items) == 0 {
		return "📋 The menu is empty."
	}
	var b strings.Builder
	b.WriteString("📋 Menu")
	category := ""
	for _, item := range items {
		if item.Category != category {
			category = item.Category
			fmt.Fprintf(&b, "\n\n*%s*", category)
		}
		fmt.Fprintf(&b, "\n%d. %s - %s", item.ID, item.Name, models.FormatAmount(item.Price, currency))
	}
	return b.String()
}

// FormatOrder summarises the order being built.
func FormatOrder(lines []models.OrderLine, currency string) string {
	if len(lines) == 0 {
		return "🛒 No items in the current order."
	}
	var b strings.Builder
	b.WriteString("🛒 Current order\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "• %s x%d = %s\n", line.Name, line.Quantity, models.FormatAmount(line.Subtotal(), currency))
	}
	fmt.Fprintf(&b, "Total: %s", models.FormatAmount(models.LinesTotal(lines), currency))
	return b.String()
}
