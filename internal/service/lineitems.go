package service

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/draftproxy/internal/shopify"
	"github.com/jafarshop/draftproxy/pkg/errors"
)

// BuildLineItems converts the raw cart into draft order line items. Output
// preserves cart order, one line item per cart item. Quantities are copied
// verbatim; the upstream cart is trusted.
func BuildLineItems(cart CartPayload) ([]shopify.DraftOrderLineItemInput, error) {
	if len(cart.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "Cart is empty or invalid"}
	}

	lineItems := make([]shopify.DraftOrderLineItemInput, 0, len(cart.Items))
	for _, item := range cart.Items {
		variantID := shopify.VariantGID(item.VariantID)
		lineItems = append(lineItems, shopify.DraftOrderLineItemInput{
			VariantID: &variantID,
			Quantity:  item.Quantity,
		})
	}

	return lineItems, nil
}

// RemainingValueSpec describes whether and how much "amount still owed"
// should be added as a synthetic line item. Derived per request, never
// stored.
type RemainingValueSpec struct {
	Amount      decimal.Decimal
	ShouldApply bool
}

// ParseRemainingValue derives a RemainingValueSpec from the loosely-typed
// remainingValue field. Zero, negative, or non-numeric amounts mean "do not
// apply" - never an error.
func ParseRemainingValue(v interface{}) RemainingValueSpec {
	var (
		amount decimal.Decimal
		err    error
	)

	switch val := v.(type) {
	case nil:
		return RemainingValueSpec{}
	case string:
		amount, err = decimal.NewFromString(strings.TrimSpace(val))
	case float64:
		amount = decimal.NewFromFloat(val)
	case json.Number:
		amount, err = decimal.NewFromString(val.String())
	default:
		return RemainingValueSpec{}
	}

	if err != nil || amount.Sign() <= 0 {
		return RemainingValueSpec{}
	}

	return RemainingValueSpec{Amount: amount, ShouldApply: true}
}

// AppendRemainingValue appends the synthetic non-taxable line item when the
// spec applies. The existing items are scanned first so that applying the
// augmentation twice (create time and webhook time) adds the item at most
// once. Returns the resulting sequence and whether the item was appended.
func AppendRemainingValue(items []shopify.DraftOrderLineItemInput, spec RemainingValueSpec, title string) ([]shopify.DraftOrderLineItemInput, bool) {
	if !spec.ShouldApply {
		return items, false
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		if item.Title != nil {
			titles = append(titles, *item.Title)
		}
	}
	if ContainsRemainingValue(titles, title) {
		return items, false
	}

	return append(items, RemainingValueLineItem(title, spec.Amount)), true
}

// RemainingValueLineItem builds the synthetic line item: quantity 1,
// non-taxable, unit price formatted with exactly two decimal digits.
func RemainingValueLineItem(title string, amount decimal.Decimal) shopify.DraftOrderLineItemInput {
	itemTitle := title
	price := amount.StringFixed(2)
	taxable := false
	return shopify.DraftOrderLineItemInput{
		Title:             &itemTitle,
		OriginalUnitPrice: &price,
		Quantity:          1,
		Taxable:           &taxable,
	}
}

// ContainsRemainingValue reports whether any title already names the
// remaining value item. The comparison is a case-insensitive substring match
// so renamed or prefixed copies still count.
func ContainsRemainingValue(titles []string, title string) bool {
	needle := strings.ToLower(title)
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
