package shopify

// DraftOrderCreateMutation creates a draft order
const DraftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder {
      id
      name
      totalPrice
      customer {
        email
        firstName
        lastName
      }
      lineItems(first: 50) {
        edges {
          node {
            title
            quantity
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// DraftOrderDeleteMutation deletes (cancels) a draft order
const DraftOrderDeleteMutation = `
mutation draftOrderDelete($input: DraftOrderDeleteInput!) {
  draftOrderDelete(input: $input) {
    deletedId
    userErrors {
      field
      message
    }
  }
}
`

// DraftOrderUpdateMutation appends line items to an existing draft order.
// Used by the draft-order-create webhook to add the remaining value item.
const DraftOrderUpdateMutation = `
mutation draftOrderUpdate($id: ID!, $input: DraftOrderInput!) {
  draftOrderUpdate(id: $id, input: $input) {
    draftOrder {
      id
      name
      subtotalPrice
      totalPrice
      lineItems(first: 20) {
        edges {
          node {
            id
            title
            quantity
            originalUnitPrice
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// DraftOrderInput represents the input for creating a draft order
type DraftOrderInput struct {
	LineItems        []DraftOrderLineItemInput  `json:"lineItems"`
	CustomerID       *string                    `json:"customerId,omitempty"`
	Email            string                     `json:"email"`
	Note             string                     `json:"note"`
	ShippingAddress  *DraftOrderAddressInput    `json:"shippingAddress,omitempty"`
	BillingAddress   *DraftOrderAddressInput    `json:"billingAddress,omitempty"`
	CustomAttributes []DraftOrderAttributeInput `json:"customAttributes,omitempty"`
}

// DraftOrderLineItemInput is either a catalog line (VariantID set) or a
// custom line (Title and OriginalUnitPrice set).
type DraftOrderLineItemInput struct {
	VariantID         *string `json:"variantId,omitempty"`
	Title             *string `json:"title,omitempty"`
	OriginalUnitPrice *string `json:"originalUnitPrice,omitempty"`
	Quantity          int     `json:"quantity"`
	Taxable           *bool   `json:"taxable,omitempty"`
}

type DraftOrderAddressInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address1  string  `json:"address1"`
	Address2  *string `json:"address2,omitempty"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Phone     *string `json:"phone,omitempty"`
}

type DraftOrderAttributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
