package adsdomain

import "fmt"

// ErrorResponse é o envelope de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("google ads: %s (%d %s)", e.Error.Message, e.Error.Code, e.Error.Status)
}

// IsAuthError indica credencial revogada ou sem permissão
func (e *ErrorResponse) IsAuthError() bool {
	return e.Error.Status == "UNAUTHENTICATED" || e.Error.Status == "PERMISSION_DENIED"
}

type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
	PageSize  int    `json:"pageSize,omitempty"`
}
