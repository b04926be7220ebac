package shopify

// CustomerQuery fetches a customer profile with the default address
const CustomerQuery = `
query getCustomer($customerId: ID!) {
  customer(id: $customerId) {
    id
    email
    firstName
    lastName
    phone
    defaultAddress {
      address1
      address2
      city
      province
      country
      zip
      firstName
      lastName
      phone
    }
  }
}
`

// DraftOrdersByCustomerQuery fetches the draft orders belonging to a customer
const DraftOrdersByCustomerQuery = `
query getDraftOrders($query: String!) {
  draftOrders(first: 20, query: $query) {
    edges {
      node {
        id
        name
        status
        totalPrice
        createdAt
        customer {
          firstName
          lastName
          email
        }
        lineItems(first: 5) {
          edges {
            node {
              title
              quantity
              variant {
                title
                product {
                  title
                }
              }
            }
          }
        }
      }
    }
  }
}
`
