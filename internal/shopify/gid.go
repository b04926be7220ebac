package shopify

import (
	"fmt"
	"strconv"
	"strings"
)

// VariantGID templates a numeric variant id into Shopify's global-id format.
func VariantGID(variantID int64) string {
	return fmt.Sprintf("gid://shopify/ProductVariant/%d", variantID)
}

// CustomerGID templates a numeric customer id (as received from the app
// proxy) into Shopify's global-id format.
func CustomerGID(customerID string) string {
	return fmt.Sprintf("gid://shopify/Customer/%s", customerID)
}

// DraftOrderGID templates a numeric draft order id into Shopify's global-id
// format.
func DraftOrderGID(draftOrderID int64) string {
	return fmt.Sprintf("gid://shopify/DraftOrder/%d", draftOrderID)
}

// ExtractIDFromGID parses the numeric id out of a GID such as
// "gid://shopify/DraftOrder/123456".
func ExtractIDFromGID(gid string) (int64, error) {
	parts := strings.Split(gid, "/")
	if len(parts) < 4 {
		return 0, fmt.Errorf("invalid GID format: %s", gid)
	}

	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID from GID: %w", err)
	}

	return id, nil
}
