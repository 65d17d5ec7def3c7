package httptransport

// ErrorResponse is the body of every guard rejection.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
