package checkout

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
)

// Line is one cart entry as it appears in the order message.
type Line struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// Order is the composed handoff for a cart: the human-readable message, the
// WhatsApp deep link carrying it, and the summed total.
type Order struct {
	Lines   []Line `json:"lines"`
	Total   string `json:"total"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Compose builds the order handoff from the current cart. Prices ride along
// as free-form passthrough fields on the items; entries without a parseable
// price still appear in the message and contribute zero to the total.
func Compose(cfg config.CheckoutConfig, items []content.Item) (Order, error) {
	if len(items) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	order := Order{Lines: make([]Line, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		price := itemPrice(item)
		order.Lines = append(order.Lines, Line{
			Title:    item.Title,
			Category: item.Category,
			Price:    price,
		})
		if amount, ok := ParsePrice(price); ok {
			total = total.Add(amount)
		}
	}
	order.Total = FormatPrice(total)

	var msg strings.Builder
	fmt.Fprintf(&msg, "Olá! Gostaria de finalizar meu pedido na %s:\n\n", cfg.BrandName)
	for _, line := range order.Lines {
		msg.WriteString("• ")
		msg.WriteString(line.Title)
		if line.Category != "" {
			fmt.Fprintf(&msg, " (%s)", line.Category)
		}
		if line.Price != "" {
			fmt.Fprintf(&msg, " — %s", line.Price)
		}
		msg.WriteString("\n")
	}
	fmt.Fprintf(&msg, "\nTotal: %s", order.Total)
	order.Message = msg.String()

	if cfg.Destination != "" {
		order.URL = fmt.Sprintf("https://wa.me/%s?text=%s", cfg.Destination, url.QueryEscape(order.Message))
	}
	return order, nil
}

func itemPrice(item content.Item) string {
	raw, ok := item.Extra["price"]
	if !ok {
		return ""
	}
	var price string
	if err := json.Unmarshal(raw, &price); err != nil {
		return ""
	}
	return price
}

// ParsePrice extracts a decimal amount from a display price such as
// "R$ 1.290,00". Thousands separators are dots, the decimal mark a comma.
func ParsePrice(display string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range display {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	if b.Len() == 0 {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// FormatPrice renders an amount back in the display convention.
func FormatPrice(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	whole, cents := parts[0], parts[1]

	var grouped strings.Builder
	for idx, digit := range whole {
		if idx > 0 && (len(whole)-idx)%3 == 0 {
			grouped.WriteRune('.')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), cents)
}
