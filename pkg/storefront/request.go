package storefront

const markAsPaidMutation = `mutation orderMarkAsPaid($input: OrderMarkAsPaidInput!) {
  orderMarkAsPaid(input: $input) {
    order { id name displayFinancialStatus }
    userErrors { field message }
  }
}`

// OrderUpdate lists the fields to write. Nil fields are left untouched.
type OrderUpdate struct {
	Tags *string
	Note *string
}

type orderUpdateRequest struct {
	Order orderUpdateBody `json:"order"`
}

type orderUpdateBody struct {
	ID   int64   `json:"id"`
	Tags *string `json:"tags,omitempty"`
	Note *string `json:"note,omitempty"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}
