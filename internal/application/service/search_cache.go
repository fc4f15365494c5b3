package service

import (
	"context"

	"github.com/khoahotran/notion-blog/internal/domain/search"
)

// ResultCache stores successful strategy responses. A miss is (nil, false, nil).
type ResultCache interface {
	Get(ctx context.Context, strategy string, params search.SearchParams) (*search.SearchResults, bool, error)
	Set(ctx context.Context, strategy string, params search.SearchParams, results *search.SearchResults) error
}
