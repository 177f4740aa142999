package settings

import (
	"context"
	"net/url"

	"meridianmall.com/meridian-web/internal/store"
)

const table = "site_settings"

// StoreFetch adapts a store client into the loader's FetchFunc: all
// active rows of the settings table in one round trip, ordered by
// sort rank ascending. No pagination; the table fits one response.
func StoreFetch(st *store.Client) FetchFunc {
	return func(ctx context.Context) ([]Row, error) {
		query := url.Values{}
		query.Set("select", "*")
		query.Set("is_active", "eq.true")
		query.Set("order", "sort_order.asc")
		var rows []Row
		if err := st.Select(ctx, table, query, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
}
