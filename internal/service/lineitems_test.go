package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildLineItems(t *testing.T) {
	cart := CartPayload{Items: []CartItem{
		{VariantID: 111, Quantity: 2, Title: "Blue Shirt"},
		{VariantID: 222, Quantity: 1, Title: "Red Hat"},
		{VariantID: 333, Quantity: 5, Title: "Socks"},
	}}

	items, err := BuildLineItems(cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != len(cart.Items) {
		t.Fatalf("expected %d line items, got %d", len(cart.Items), len(items))
	}

	expectedIDs := []string{
		"gid://shopify/ProductVariant/111",
		"gid://shopify/ProductVariant/222",
		"gid://shopify/ProductVariant/333",
	}
	for i, item := range items {
		if item.VariantID == nil || *item.VariantID != expectedIDs[i] {
			t.Errorf("item %d: expected variant id %q, got %v", i, expectedIDs[i], item.VariantID)
		}
		if item.Quantity != cart.Items[i].Quantity {
			t.Errorf("item %d: expected quantity %d, got %d", i, cart.Items[i].Quantity, item.Quantity)
		}
	}
}

func TestBuildLineItems_EmptyCart(t *testing.T) {
	for _, cart := range []CartPayload{
		{},
		{Items: []CartItem{}},
	} {
		if _, err := BuildLineItems(cart); err == nil {
			t.Errorf("expected validation error for cart %+v", cart)
		}
	}
}

func TestParseRemainingValue(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		shouldApply bool
		amount      string
	}{
		{"string decimal", "12.5", true, "12.50"},
		{"string integer", "5", true, "5.00"},
		{"number", 12.5, true, "12.50"},
		{"zero", "0", false, ""},
		{"zero number", 0.0, false, ""},
		{"negative", "-3.50", false, ""},
		{"non-numeric", "abc", false, ""},
		{"empty string", "", false, ""},
		{"nil", nil, false, ""},
		{"bool", true, false, ""},
		{"whitespace padded", "  7.1  ", true, "7.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ParseRemainingValue(tt.input)
			if spec.ShouldApply != tt.shouldApply {
				t.Fatalf("expected shouldApply=%v, got %v", tt.shouldApply, spec.ShouldApply)
			}
			if tt.shouldApply && spec.Amount.StringFixed(2) != tt.amount {
				t.Errorf("expected amount %s, got %s", tt.amount, spec.Amount.StringFixed(2))
			}
		})
	}
}

func TestAppendRemainingValue(t *testing.T) {
	base, err := BuildLineItems(CartPayload{Items: []CartItem{{VariantID: 111, Quantity: 2}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spec := RemainingValueSpec{Amount: decimal.RequireFromString("12.5"), ShouldApply: true}
	items, appended := AppendRemainingValue(base, spec, "Remaining Value")
	if !appended {
		t.Fatal("expected item to be appended")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	synthetic := items[1]
	if synthetic.Title == nil || *synthetic.Title != "Remaining Value" {
		t.Errorf("expected title Remaining Value, got %v", synthetic.Title)
	}
	if synthetic.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", synthetic.Quantity)
	}
	if synthetic.OriginalUnitPrice == nil || *synthetic.OriginalUnitPrice != "12.50" {
		t.Errorf("expected originalUnitPrice 12.50, got %v", synthetic.OriginalUnitPrice)
	}
	if synthetic.Taxable == nil || *synthetic.Taxable {
		t.Error("expected taxable=false")
	}
}

func TestAppendRemainingValue_NotApplied(t *testing.T) {
	base, _ := BuildLineItems(CartPayload{Items: []CartItem{{VariantID: 111, Quantity: 1}}})

	items, appended := AppendRemainingValue(base, RemainingValueSpec{}, "Remaining Value")
	if appended {
		t.Error("expected no append when spec does not apply")
	}
	if len(items) != 1 {
		t.Errorf("expected sequence unchanged, got %d items", len(items))
	}
}

func TestAppendRemainingValue_Idempotent(t *testing.T) {
	base, _ := BuildLineItems(CartPayload{Items: []CartItem{{VariantID: 111, Quantity: 1}}})
	spec := RemainingValueSpec{Amount: decimal.RequireFromString("5"), ShouldApply: true}

	// Apply twice, simulating create-time plus webhook-time augmentation
	once, appended := AppendRemainingValue(base, spec, "Remaining Value")
	if !appended {
		t.Fatal("expected first application to append")
	}
	twice, appended := AppendRemainingValue(once, spec, "Remaining Value")
	if appended {
		t.Error("expected second application to be a no-op")
	}
	if len(twice) != 2 {
		t.Errorf("expected 2 items after double application, got %d", len(twice))
	}
}

func TestContainsRemainingValue_CaseInsensitive(t *testing.T) {
	tests := []struct {
		titles []string
		want   bool
	}{
		{[]string{"Blue Shirt"}, false},
		{[]string{"Remaining Value"}, true},
		{[]string{"REMAINING VALUE"}, true},
		{[]string{"remaining value (adjustment)"}, true},
		{[]string{"Blue Shirt", "Gift Card - remaining VALUE"}, true},
		{nil, false},
	}

	for _, tt := range tests {
		if got := ContainsRemainingValue(tt.titles, "Remaining Value"); got != tt.want {
			t.Errorf("ContainsRemainingValue(%v) = %v, want %v", tt.titles, got, tt.want)
		}
	}
}
