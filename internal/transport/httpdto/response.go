package httpdto

// ErrorResponse is the body of every non-chat failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func NewSuccessResponse() SuccessResponse {
	return SuccessResponse{Success: true}
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		Error: err,
		Code:  code,
	}
}

// StatusResponse is returned by /ping and /health.
type StatusResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}
