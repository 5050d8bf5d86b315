package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleJSONShape(t *testing.T) {
	sale := Sale{
		ID:   1704873600000,
		Date: "2024-01-10",
		Time: "09:15:00",
		Items: []OrderLine{
			{ItemID: 1, Name: "Espresso", Price: decimal.NewFromInt(25), Quantity: 2},
		},
		Total: decimal.NewFromInt(50),
	}

	data, err := json.Marshal(sale)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1704873600000,"date":"2024-01-10","time":"09:15:00","items":[{"id":1,"name":"Espresso","price":25,"quantity":2}],"total":50}`,
		string(data))

	var decoded Sale
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Total.Equal(sale.Total))
	assert.Equal(t, 2, decoded.ItemCount())
}

func TestSaleCloneIsIndependent(t *testing.T) {
	sale := Sale{Items: []OrderLine{{ItemID: 1, Quantity: 1}}}
	clone := sale.Clone()
	clone.Items[0].Quantity = 9

	assert.Equal(t, 1, sale.Items[0].Quantity)
}

func TestLinesTotal(t *testing.T) {
	lines := []OrderLine{
		{ItemID: 1, Name: "Espresso", Price: decimal.RequireFromString("25.00"), Quantity: 2},
		{ItemID: 3, Name: "Latte", Price: decimal.RequireFromString("35.00"), Quantity: 1},
	}

	assert.True(t, LinesTotal(lines).Equal(decimal.RequireFromString("85.00")))
	assert.Equal(t, 3, LinesQuantity(lines))
	assert.True(t, LinesTotal(nil).IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "85.00 MVR", FormatAmount(decimal.NewFromInt(85), "MVR"))
	assert.Equal(t, "62.50", FormatAmount(decimal.RequireFromString("62.5"), ""))
}

func TestReceiptText(t *testing.T) {
	issued := time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC)
	receipt := NewReceipt("MooniCafe", "MVR", issued, []OrderLine{
		{ItemID: 1, Name: "Espresso", Price: decimal.NewFromInt(25), Quantity: 2},
		{ItemID: 3, Name: "Latte", Price: decimal.NewFromInt(35), Quantity: 1},
	})

	text := receipt.Text()
	assert.Contains(t, text, "MooniCafe")
	assert.Contains(t, text, "2024-01-10 09:15:00")
	assert.Contains(t, text, "Espresso x2")
	assert.Contains(t, text, "50.00 MVR")
	assert.Contains(t, text, "Items: 3")

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "Total"))
	assert.True(t, strings.HasSuffix(last, "85.00 MVR"))
}

func TestReceiptAlignsMultiByteNames(t *testing.T) {
	issued := time.Date(2024, 1, 10, 9, 15, 0, 0, time.UTC)
	receipt := NewReceipt("Café Mooni", "MVR", issued, []OrderLine{
		{ItemID: 1, Name: "Café Crème", Price: decimal.NewFromInt(30), Quantity: 1},
		{ItemID: 2, Name: "Tea", Price: decimal.NewFromInt(20), Quantity: 1},
	})

	lines := strings.Split(strings.TrimRight(receipt.Text(), "\n"), "\n")
	for _, line := range lines[3:5] {
		assert.Equal(t, receiptWidth, utf8.RuneCountInString(line), line)
	}
	assert.Equal(t, strings.Repeat(" ", 13)+"Café Mooni", lines[0])
}
