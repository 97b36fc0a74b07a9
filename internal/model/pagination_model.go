package model

// PaginationMetaDTO describes the page window of a list response.
type PaginationMetaDTO struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PaginatedResponse wraps a page of items with its pagination metadata.
type PaginatedResponse[T any] struct {
	Data       []T               `json:"data"`
	Pagination PaginationMetaDTO `json:"pagination"`
}
