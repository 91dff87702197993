package models

type PageMeta struct {
	Limit       int   `json:"limit"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
	Total       int64 `json:"total"`
}

// Page is a single page of results with its metadata.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// NewPage computes lastPage from the total row count.
func NewPage[T any](data []T, limit, page int, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := 0
	if limit > 0 {
		lastPage = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{
		Data: data,
		Meta: PageMeta{Limit: limit, CurrentPage: page, LastPage: lastPage, Total: total},
	}
}
