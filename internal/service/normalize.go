package service

import (
	"encoding/json"

	"github.com/jafarshop/draftproxy/internal/shopify"
	"github.com/jafarshop/draftproxy/pkg/errors"
)

// Response normalization: every decoder classifies the GraphQL envelope the
// same way. Top-level errors surface as upstream failures (500), mutation
// userErrors as business errors (400), anything else as the typed payload.
// Internal envelope shape never leaks past this file beyond error text.

func envelopeError(resp *shopify.GraphQLResponse) error {
	if len(resp.Errors) > 0 {
		return errors.Upstreamf("%s", resp.Errors[0].Message)
	}
	return nil
}

func userError(userErrors []shopify.UserError) error {
	if len(userErrors) > 0 {
		return &errors.ErrBusiness{
			Message: userErrors[0].Message,
			Field:   userErrors[0].Field,
		}
	}
	return nil
}

type lineItemConnection struct {
	Edges []struct {
		Node struct {
			Title    string `json:"title"`
			Quantity int    `json:"quantity"`
			Variant  *struct {
				Title   string `json:"title"`
				Product *struct {
					Title string `json:"title"`
				} `json:"product"`
			} `json:"variant"`
		} `json:"node"`
	} `json:"edges"`
}

func decodeDraftOrderCreate(resp *shopify.GraphQLResponse, remainingValueTitle string) (*DraftOrderSummary, error) {
	if err := envelopeError(resp); err != nil {
		return nil, err
	}

	var result struct {
		DraftOrderCreate struct {
			DraftOrder *struct {
				ID         string `json:"id"`
				Name       string `json:"name"`
				TotalPrice string `json:"totalPrice"`
				Customer   *struct {
					Email     string `json:"email"`
					FirstName string `json:"firstName"`
					LastName  string `json:"lastName"`
				} `json:"customer"`
				LineItems lineItemConnection `json:"lineItems"`
			} `json:"draftOrder"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"draftOrderCreate"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, errors.Upstreamf("failed to parse draft order response: %v", err)
	}
	if err := userError(result.DraftOrderCreate.UserErrors); err != nil {
		return nil, err
	}

	draftOrder := result.DraftOrderCreate.DraftOrder
	if draftOrder == nil || draftOrder.ID == "" {
		return nil, errors.Upstreamf("draftOrderCreate returned empty draft order")
	}

	// Whether the synthetic item made it into the final server-side state
	titles := make([]string, 0, len(draftOrder.LineItems.Edges))
	for _, edge := range draftOrder.LineItems.Edges {
		titles = append(titles, edge.Node.Title)
	}

	summary := &DraftOrderSummary{
		ID:                  draftOrder.ID,
		Name:                draftOrder.Name,
		TotalPrice:          draftOrder.TotalPrice,
		CustomLineItemAdded: ContainsRemainingValue(titles, remainingValueTitle),
	}
	if draftOrder.Customer != nil {
		summary.Customer = &CustomerInfo{
			Email:     draftOrder.Customer.Email,
			FirstName: draftOrder.Customer.FirstName,
			LastName:  draftOrder.Customer.LastName,
		}
	}

	return summary, nil
}

func decodeDraftOrderDelete(resp *shopify.GraphQLResponse) (string, error) {
	if err := envelopeError(resp); err != nil {
		return "", err
	}

	var result struct {
		DraftOrderDelete struct {
			DeletedID  string              `json:"deletedId"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"draftOrderDelete"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", errors.Upstreamf("failed to parse draft order delete response: %v", err)
	}
	if err := userError(result.DraftOrderDelete.UserErrors); err != nil {
		return "", err
	}

	return result.DraftOrderDelete.DeletedID, nil
}

func decodeDraftOrderList(resp *shopify.GraphQLResponse) ([]DraftOrderListEntry, error) {
	if err := envelopeError(resp); err != nil {
		return nil, err
	}

	var result struct {
		DraftOrders struct {
			Edges []struct {
				Node struct {
					ID         string `json:"id"`
					Name       string `json:"name"`
					Status     string `json:"status"`
					TotalPrice string `json:"totalPrice"`
					CreatedAt  string `json:"createdAt"`
					Customer   *struct {
						FirstName string `json:"firstName"`
						LastName  string `json:"lastName"`
						Email     string `json:"email"`
					} `json:"customer"`
					LineItems lineItemConnection `json:"lineItems"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"draftOrders"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, errors.Upstreamf("failed to parse draft orders response: %v", err)
	}

	entries := make([]DraftOrderListEntry, 0, len(result.DraftOrders.Edges))
	for _, edge := range result.DraftOrders.Edges {
		node := edge.Node

		lineItems := make([]DraftOrderListLineItem, 0, len(node.LineItems.Edges))
		for _, li := range node.LineItems.Edges {
			item := DraftOrderListLineItem{
				Title:    li.Node.Title,
				Quantity: li.Node.Quantity,
			}
			if li.Node.Variant != nil {
				item.VariantTitle = li.Node.Variant.Title
				if li.Node.Variant.Product != nil {
					item.ProductTitle = li.Node.Variant.Product.Title
				}
			}
			lineItems = append(lineItems, item)
		}

		entry := DraftOrderListEntry{
			ID:         node.ID,
			Name:       node.Name,
			Status:     node.Status,
			TotalPrice: node.TotalPrice,
			CreatedAt:  node.CreatedAt,
			LineItems:  lineItems,
		}
		if node.Customer != nil {
			entry.Customer = &CustomerInfo{
				Email:     node.Customer.Email,
				FirstName: node.Customer.FirstName,
				LastName:  node.Customer.LastName,
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeDraftOrderUpdate(resp *shopify.GraphQLResponse) error {
	if err := envelopeError(resp); err != nil {
		return err
	}

	var result struct {
		DraftOrderUpdate struct {
			DraftOrder *struct {
				ID string `json:"id"`
			} `json:"draftOrder"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"draftOrderUpdate"`
	}

	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return errors.Upstreamf("failed to parse draft order update response: %v", err)
	}
	return userError(result.DraftOrderUpdate.UserErrors)
}
