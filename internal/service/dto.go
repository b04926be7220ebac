package service

// CartItem is a single cart line as sent by the storefront script. The cart
// is the upstream source of truth; quantity is copied verbatim.
type CartItem struct {
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Title     string `json:"title"`
}

// CartPayload is the raw cart object from the theme extension
type CartPayload struct {
	Items []CartItem `json:"items"`
	Email string     `json:"email"`
}

// CreateDraftOrderRequest is the create endpoint body. RemainingValue is
// accepted as either a JSON string or a number; anything non-numeric simply
// means "do not apply".
type CreateDraftOrderRequest struct {
	Cart                  CartPayload `json:"cart"`
	RemainingValue        interface{} `json:"remainingValue"`
	AddRemainingValueItem bool        `json:"addRemainingValueItem"`
}

// CustomerInfo is the customer block returned to the storefront
type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DraftOrderSummary is the caller-facing result of a successful create
type DraftOrderSummary struct {
	ID                  string        `json:"draftOrderId"`
	Name                string        `json:"draftOrderName"`
	Customer            *CustomerInfo `json:"customerInfo"`
	CustomLineItemAdded bool          `json:"customLineItemAdded"`
	TotalPrice          string        `json:"totalPrice"`
}

// DraftOrderListLineItem is a reshaped line item in the list response
type DraftOrderListLineItem struct {
	Title        string `json:"title"`
	Quantity     int    `json:"quantity"`
	VariantTitle string `json:"variantTitle,omitempty"`
	ProductTitle string `json:"productTitle,omitempty"`
}

// DraftOrderListEntry is a reshaped draft order in the list response
type DraftOrderListEntry struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Status     string                   `json:"status"`
	TotalPrice string                   `json:"totalPrice"`
	CreatedAt  string                   `json:"createdAt"`
	Customer   *CustomerInfo            `json:"customer"`
	LineItems  []DraftOrderListLineItem `json:"lineItems"`
}

// WebhookDraftOrder is the draft-order payload delivered by the
// draft_orders/create webhook
type WebhookDraftOrder struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	TotalPrice        string            `json:"total_price"`
	AdminGraphqlAPIID string            `json:"admin_graphql_api_id"`
	LineItems         []WebhookLineItem `json:"line_items"`
}

type WebhookLineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}
