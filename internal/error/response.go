package middleware

// Response is the error body for every failed request outside /api/v1
// validation rejections.
type Response struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
