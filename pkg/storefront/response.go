package storefront

import "github.com/Behyna/paylink-reconciler/pkg/tagset"

const FinancialStatusPaid = "paid"

type Order struct {
	ID              string
	Name            string
	Tags            tagset.Set
	Note            string
	FinancialStatus string
}

func (o Order) IsPaid() bool {
	return o.FinancialStatus == FinancialStatusPaid
}

type MarkAsPaidResult struct {
	OrderGID               string
	Name                   string
	DisplayFinancialStatus string
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type orderEnvelope struct {
	Order orderPayload `json:"order"`
}

type orderPayload struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Tags            string  `json:"tags"`
	Note            *string `json:"note"`
	FinancialStatus string  `json:"financial_status"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type markAsPaidResponse struct {
	Data struct {
		OrderMarkAsPaid *struct {
			Order *struct {
				ID                     string `json:"id"`
				Name                   string `json:"name"`
				DisplayFinancialStatus string `json:"displayFinancialStatus"`
			} `json:"order"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"orderMarkAsPaid"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
