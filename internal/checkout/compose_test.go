package checkout

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
)

func pricedItem(id, title, category, price string) content.Item {
	item := content.Item{ID: id, Title: title, Category: category}
	if price != "" {
		raw, _ := json.Marshal(price)
		item.Extra = map[string]json.RawMessage{"price": raw}
	}
	return item
}

func TestComposeEmptyCart(t *testing.T) {
	_, err := Compose(config.CheckoutConfig{BrandName: "H&R GRIFES"}, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("empty cart: %v", err)
	}
}

func TestComposeSumsAndFormats(t *testing.T) {
	cfg := config.CheckoutConfig{Destination: "5511999999999", BrandName: "H&R GRIFES"}
	items := []content.Item{
		pricedItem("1", "Narrativa Textural", "Materiais", "R$ 1.290,00"),
		pricedItem("2", "Cortes Arquitetônicos", "Silhueta", "R$ 890,50"),
		pricedItem("3", "Sem Preço", "Paleta", ""),
	}

	order, err := Compose(cfg, items)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(order.Lines) != 3 {
		t.Fatalf("lines = %+v", order.Lines)
	}
	if order.Total != "R$ 2.180,50" {
		t.Fatalf("total = %q", order.Total)
	}
	if !strings.Contains(order.Message, "H&R GRIFES") {
		t.Fatalf("message = %q", order.Message)
	}
	if !strings.Contains(order.Message, "Narrativa Textural (Materiais)") {
		t.Fatalf("message = %q", order.Message)
	}
	if !strings.Contains(order.Message, "Sem Preço") {
		t.Fatal("unpriced entry missing from message")
	}

	parsed, err := url.Parse(order.URL)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if parsed.Host != "wa.me" || parsed.Path != "/5511999999999" {
		t.Fatalf("url = %q", order.URL)
	}
	if parsed.Query().Get("text") != order.Message {
		t.Fatal("link does not carry the message")
	}
}

func TestComposeWithoutDestination(t *testing.T) {
	order, err := Compose(config.CheckoutConfig{BrandName: "H&R GRIFES"}, []content.Item{pricedItem("1", "Look", "", "R$ 10,00")})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if order.URL != "" {
		t.Fatalf("url = %q", order.URL)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"R$ 1.290,00", "1290", true},
		{"R$ 890,50", "890.5", true},
		{"1290", "1290", true},
		{"", "0", false},
		{"sob consulta", "0", false},
	}
	for _, tc := range cases {
		got, ok := ParsePrice(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParsePrice(%q) ok = %v", tc.in, ok)
		}
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Fatalf("ParsePrice(%q) = %s, want %s", tc.in, got, want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"890.5", "R$ 890,50"},
		{"1290", "R$ 1.290,00"},
		{"1234567.89", "R$ 1.234.567,89"},
	}
	for _, tc := range cases {
		amount, _ := decimal.NewFromString(tc.in)
		if got := FormatPrice(amount); got != tc.want {
			t.Fatalf("FormatPrice(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
