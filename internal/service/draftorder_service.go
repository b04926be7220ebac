package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/draftproxy/internal/config"
	"github.com/jafarshop/draftproxy/internal/shopify"
	"github.com/jafarshop/draftproxy/pkg/errors"
)

// GraphQLExecutor issues a single GraphQL operation against the Shopify
// Admin API. Implemented by *shopify.Client; stubbed in tests.
type GraphQLExecutor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

type DraftOrderService struct {
	client   GraphQLExecutor
	defaults config.DefaultsConfig
	logger   *zap.Logger
}

// NewDraftOrderService creates a new draft order service
func NewDraftOrderService(client GraphQLExecutor, defaults config.DefaultsConfig, logger *zap.Logger) *DraftOrderService {
	return &DraftOrderService{
		client:   client,
		defaults: defaults,
		logger:   logger,
	}
}

// ResolvedCustomer is the outcome of customer resolution: an email and a
// fully-populated shipping address.
type ResolvedCustomer struct {
	Email   string
	Address shopify.DraftOrderAddressInput
}

type customerProfile struct {
	Customer *struct {
		ID             string `json:"id"`
		Email          string `json:"email"`
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		Phone          string `json:"phone"`
		DefaultAddress *struct {
			Address1  string `json:"address1"`
			Address2  string `json:"address2"`
			City      string `json:"city"`
			Province  string `json:"province"`
			Country   string `json:"country"`
			Zip       string `json:"zip"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Phone     string `json:"phone"`
		} `json:"defaultAddress"`
	} `json:"customer"`
}

// ResolveCustomer fetches the customer profile and default address for the
// given id and derives a shipping address. Resolution failures are
// non-fatal: any error from the platform degrades to the configured
// placeholder email and address. An empty id skips the call entirely.
func (s *DraftOrderService) ResolveCustomer(ctx context.Context, customerID string) ResolvedCustomer {
	resolved := ResolvedCustomer{
		Email:   s.defaults.Email,
		Address: s.defaultAddress(),
	}

	if customerID == "" {
		return resolved
	}

	resp, err := s.client.Execute(ctx, shopify.CustomerQuery, map[string]interface{}{
		"customerId": shopify.CustomerGID(customerID),
	})
	if err != nil {
		s.logger.Warn("Customer lookup failed, using placeholder defaults",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return resolved
	}
	if len(resp.Errors) > 0 {
		s.logger.Warn("Customer lookup returned errors, using placeholder defaults",
			zap.String("customer_id", customerID),
			zap.String("error", resp.Errors[0].Message),
		)
		return resolved
	}

	var profile customerProfile
	if err := json.Unmarshal(resp.Data, &profile); err != nil || profile.Customer == nil {
		s.logger.Warn("Customer not found, using placeholder defaults",
			zap.String("customer_id", customerID),
		)
		return resolved
	}

	customer := profile.Customer
	if customer.Email != "" {
		resolved.Email = customer.Email
	}

	addr := customer.DefaultAddress
	if addr != nil {
		// Each field falls back independently to its placeholder
		resolved.Address = shopify.DraftOrderAddressInput{
			Address1:  fallback(addr.Address1, s.defaults.Address1),
			City:      fallback(addr.City, s.defaults.City),
			Province:  fallback(addr.Province, s.defaults.Province),
			Country:   fallback(addr.Country, s.defaults.Country),
			Zip:       fallback(addr.Zip, s.defaults.Zip),
			FirstName: fallback(addr.FirstName, fallback(customer.FirstName, s.defaults.FirstName)),
			LastName:  fallback(addr.LastName, fallback(customer.LastName, s.defaults.LastName)),
		}
		if addr.Address2 != "" {
			resolved.Address.Address2 = &addr.Address2
		}
		if phone := fallback(addr.Phone, customer.Phone); phone != "" {
			resolved.Address.Phone = &phone
		}
	} else {
		// No default address: placeholder address with the customer's name
		resolved.Address.FirstName = fallback(customer.FirstName, s.defaults.FirstName)
		resolved.Address.LastName = fallback(customer.LastName, s.defaults.LastName)
		if customer.Phone != "" {
			resolved.Address.Phone = &customer.Phone
		}
	}

	return resolved
}

// BuildDraftOrderInput assembles the full mutation input. The customerId
// field is only present when an id was supplied; the billing address is
// always a copy of the shipping address.
func (s *DraftOrderService) BuildDraftOrderInput(customerID string, resolved ResolvedCustomer, lineItems []shopify.DraftOrderLineItemInput) shopify.DraftOrderInput {
	shippingAddr := resolved.Address
	billingAddr := resolved.Address

	input := shopify.DraftOrderInput{
		Email:           resolved.Email,
		Note:            s.defaults.OrderNote,
		LineItems:       lineItems,
		ShippingAddress: &shippingAddr,
		BillingAddress:  &billingAddr,
		CustomAttributes: []shopify.DraftOrderAttributeInput{
			{Key: "source", Value: "theme_app_extension"},
		},
	}

	if customerID != "" {
		gid := shopify.CustomerGID(customerID)
		input.CustomerID = &gid
	}

	return input
}

// CreateDraftOrder runs the full create pipeline: normalize the cart,
// optionally append the remaining value item, resolve the customer, build
// the mutation input, and normalize the platform response.
func (s *DraftOrderService) CreateDraftOrder(ctx context.Context, customerID string, req CreateDraftOrderRequest) (*DraftOrderSummary, error) {
	lineItems, err := BuildLineItems(req.Cart)
	if err != nil {
		return nil, err
	}

	if req.AddRemainingValueItem {
		spec := ParseRemainingValue(req.RemainingValue)
		var appended bool
		lineItems, appended = AppendRemainingValue(lineItems, spec, s.defaults.RemainingValueTitle)
		if appended {
			s.logger.Info("Appended remaining value line item",
				zap.String("amount", spec.Amount.StringFixed(2)),
			)
		}
	}

	resolved := s.ResolveCustomer(ctx, customerID)
	if customerID == "" && req.Cart.Email != "" {
		resolved.Email = req.Cart.Email
	}

	input := s.BuildDraftOrderInput(customerID, resolved, lineItems)

	resp, err := s.client.Execute(ctx, shopify.DraftOrderCreateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return nil, errors.Upstream(err)
	}

	summary, err := decodeDraftOrderCreate(resp, s.defaults.RemainingValueTitle)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Draft order created",
		zap.String("draft_order_id", summary.ID),
		zap.String("draft_order_name", summary.Name),
	)
	return summary, nil
}

// CancelDraftOrder deletes a draft order and returns the deleted id.
func (s *DraftOrderService) CancelDraftOrder(ctx context.Context, orderID string) (string, error) {
	resp, err := s.client.Execute(ctx, shopify.DraftOrderDeleteMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"id": orderID,
		},
	})
	if err != nil {
		return "", errors.Upstream(err)
	}

	deletedID, err := decodeDraftOrderDelete(resp)
	if err != nil {
		return "", err
	}

	s.logger.Info("Draft order cancelled", zap.String("deleted_id", deletedID))
	return deletedID, nil
}

// ListDraftOrders fetches the draft orders belonging to a customer and
// reshapes them for the storefront.
func (s *DraftOrderService) ListDraftOrders(ctx context.Context, customerID string) ([]DraftOrderListEntry, error) {
	resp, err := s.client.Execute(ctx, shopify.DraftOrdersByCustomerQuery, map[string]interface{}{
		"query": fmt.Sprintf("customerId:%s", customerID),
	})
	if err != nil {
		return nil, errors.Upstream(err)
	}

	return decodeDraftOrderList(resp)
}

// AugmentDraftOrder is the webhook-side mirror of the remaining value
// augmenter. It inspects the delivered draft order for an existing remaining
// value item and, when absent, appends one through draftOrderUpdate. The
// returned bool reports whether an item was added.
//
// The duplicate check is read-then-write with no platform-side lock: a
// create-time application racing this webhook can still double-apply in a
// narrow window.
func (s *DraftOrderService) AugmentDraftOrder(ctx context.Context, payload WebhookDraftOrder) (bool, error) {
	titles := make([]string, 0, len(payload.LineItems))
	for _, item := range payload.LineItems {
		titles = append(titles, item.Title)
	}
	if ContainsRemainingValue(titles, s.defaults.RemainingValueTitle) {
		s.logger.Info("Draft order already has a remaining value line item",
			zap.Int64("draft_order_id", payload.ID),
		)
		return false, nil
	}

	spec := ParseRemainingValue(s.defaults.RemainingValueAmount)
	if !spec.ShouldApply {
		s.logger.Warn("Configured remaining value amount is not a positive number, skipping",
			zap.String("amount", s.defaults.RemainingValueAmount),
		)
		return false, nil
	}

	draftOrderGID := payload.AdminGraphqlAPIID
	if draftOrderGID == "" {
		draftOrderGID = shopify.DraftOrderGID(payload.ID)
	}

	resp, err := s.client.Execute(ctx, shopify.DraftOrderUpdateMutation, map[string]interface{}{
		"id": draftOrderGID,
		"input": map[string]interface{}{
			"lineItems": []shopify.DraftOrderLineItemInput{
				RemainingValueLineItem(s.defaults.RemainingValueTitle, spec.Amount),
			},
		},
	})
	if err != nil {
		return false, errors.Upstream(err)
	}

	if err := decodeDraftOrderUpdate(resp); err != nil {
		return false, err
	}

	s.logger.Info("Added remaining value line item via webhook",
		zap.Int64("draft_order_id", payload.ID),
		zap.String("draft_order_name", payload.Name),
	)
	return true, nil
}

func (s *DraftOrderService) defaultAddress() shopify.DraftOrderAddressInput {
	return shopify.DraftOrderAddressInput{
		Address1:  s.defaults.Address1,
		City:      s.defaults.City,
		Province:  s.defaults.Province,
		Country:   s.defaults.Country,
		Zip:       s.defaults.Zip,
		FirstName: s.defaults.FirstName,
		LastName:  s.defaults.LastName,
	}
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
