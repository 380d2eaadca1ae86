package data

import "context"

type QueryParams struct {
	Limit     int    `json:"limit"`
	NextToken []byte `json:"nextToken"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := int32(q.Limit)
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return &limit
}

type QueryResults[T interface{}] struct {
	Items     []T    `json:"items"`
	NextToken []byte `json:"nextToken,omitempty"`
}

type NextToken map[string]map[string]string

// Collect drains every page of a paginated listing.
func Collect[T interface{}](ctx context.Context, list func(context.Context, QueryParams) (QueryResults[T], error)) ([]T, error) {
	var items []T
	params := QueryParams{Limit: 100}
	for {
		results, err := list(ctx, params)
		if err != nil {
			return nil, err
		}
		items = append(items, results.Items...)
		if len(results.NextToken) == 0 {
			return items, nil
		}
		params.NextToken = results.NextToken
	}
}
