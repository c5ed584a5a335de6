package processor

const requestSourceEcommerce = "ECOMMERCE"

type TokenRequest struct {
	RequestSource string `json:"requestSource"`
	MerchantCode  string `json:"merchantCode"`
	OrderNumber   string `json:"orderNumber"`
	PublicKey     string `json:"publicKey"`
	Amount        string `json:"amount"`
}

type SearchRequest struct {
	PaymentLinkID string `json:"paymentLinkId"`
	MerchantCode  string `json:"merchantCode"`
	LanguageUsed  string `json:"languageUsed"`
}
