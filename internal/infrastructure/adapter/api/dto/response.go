package dto

// ErrorResponse is the standardized error envelope for the API
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Pagination carries list metadata. Page and Limit echo the request, Total
// is the full count of matching items.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListResponse wraps a page of items with its pagination metadata
type ListResponse struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewListResponse builds the list envelope
func NewListResponse(items any, page, limit int, total int64) ListResponse {
	return ListResponse{
		Items:      items,
		Pagination: Pagination{Page: page, Limit: limit, Total: total},
	}
}
