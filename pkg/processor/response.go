package processor

const CodeSuccess = "00"

type TokenResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Response struct {
		Token string `json:"token"`
	} `json:"response"`
}

type SearchResponse struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Response PaymentLink `json:"response"`
}

// PaymentLink is the processor's current view of a hosted payment link.
type PaymentLink struct {
	PaymentLinkID string `json:"paymentLinkId"`
	State         string `json:"state"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	URL           string `json:"url"`
}
