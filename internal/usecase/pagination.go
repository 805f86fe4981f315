package usecase

import "net/http"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// PageInput is the page/limit pair from the query string; zero means default.
type PageInput struct {
	Page  int
	Limit int
}

type PageOutput[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func (p PageInput) normalize() (PageInput, error) {
	if p.Page == 0 {
		p.Page = defaultPage
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Page < 1 {
		return p, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		return p, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return p, nil
}
