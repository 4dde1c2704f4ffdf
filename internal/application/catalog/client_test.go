package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
	"github.com/secondhand/console/internal/testutil/fakedoer"
)

func TestListOmitsAbsentFilters(t *testing.T) {
	doer := fakedoer.New()
	c := NewClient(doer)

	_, err := c.List(context.Background(), ListQuery{})
	require.NoError(t, err)

	req := doer.Last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/product/list", req.Path)
	assert.Empty(t, req.Params)
	_, present := req.Params["categoryId"]
	assert.False(t, present, "an absent category must not be sent at all")
}

func TestListWithFilters(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodGet, "/product/list", map[string]any{
		"list":  []map[string]any{{"productId": 1, "title": "bike", "price": 99.9}},
		"total": 1, "pageNum": 2, "pageSize": 5,
	})
	c := NewClient(doer)

	category, status := int64(3), 0
	page, err := c.List(context.Background(), ListQuery{
		CategoryID: &category,
		Keyword:    "bike",
		Status:     &status,
		PageQuery:  shared.Page(2, 5),
	})
	require.NoError(t, err)

	assert.Equal(t, httpclient.Params{
		"categoryId": "3",
		"keyword":    "bike",
		"status":     "0",
		"pageNum":    "2",
		"pageSize":   "5",
	}, doer.Last().Params)

	require.Len(t, page.List, 1)
	assert.Equal(t, "bike", page.List[0].Title)
	assert.True(t, decimal.RequireFromString("99.9").Equal(page.List[0].Price))
	assert.Equal(t, int64(1), page.Total)
}

func TestDetail(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodGet, "/product/detail/42", map[string]any{
		"productId": 42, "title": gofakeit.ProductName(), "images": []map[string]any{{"imageUrl": "/a.png", "isMain": 1}},
	})
	c := NewClient(doer)

	p, err := c.Detail(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(42), p.ProductID)
	require.Len(t, p.Images, 1)
	assert.Equal(t, 1, p.Images[0].IsMain)
}

func TestDescriptors(t *testing.T) {
	ctx := context.Background()
	price := decimal.RequireFromString("10.00")
	title := "lamp"
	sort := 2

	add := AddRequest{Title: "lamp", Price: price, OriginalPrice: price, CategoryID: 1, ConditionLevel: 9, Location: "Hangzhou"}
	update := UpdateRequest{ProductID: 7, Title: &title, Price: &price}
	image := ImageRequest{ProductID: 7, ImageURL: "/upload/x.png", IsMain: 1, SortOrder: &sort}
	report := ReportRequest{ProductID: 7, ReportType: 2, ReportContent: "fake"}
	method := TradeMethodRequest{MethodName: "meetup", MethodDesc: "in person"}

	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		body   any
	}{
		{"add", func(c *Client) error { _, err := c.Add(ctx, add); return err }, http.MethodPost, "/product/add", add},
		{"update", func(c *Client) error { return c.Update(ctx, update) }, http.MethodPut, "/product/update", update},
		{"delete", func(c *Client) error { return c.Delete(ctx, 7) }, http.MethodDelete, "/product/delete/7", nil},
		{"add favorite", func(c *Client) error { return c.AddFavorite(ctx, 7) }, http.MethodPost, "/product/favorite/add", favoriteRequest{ProductID: 7}},
		{"remove favorite", func(c *Client) error { return c.RemoveFavorite(ctx, 7) }, http.MethodDelete, "/product/favorite/7", nil},
		{"favorites", func(c *Client) error { _, err := c.Favorites(ctx); return err }, http.MethodGet, "/product/favorite/list", nil},
		{"add image", func(c *Client) error { return c.AddImage(ctx, image) }, http.MethodPost, "/product/image/add", image},
		{"delete image", func(c *Client) error { return c.DeleteImage(ctx, 7, 3) }, http.MethodDelete, "/product/image/7/3", nil},
		{"report", func(c *Client) error { return c.Report(ctx, report) }, http.MethodPost, "/product/report/add", report},
		{"reports", func(c *Client) error { _, err := c.Reports(ctx, 7); return err }, http.MethodGet, "/product/report/list/7", nil},
		{"trade method", func(c *Client) error { return c.AddTradeMethod(ctx, method) }, http.MethodPost, "/product/trade/method/add", method},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := fakedoer.New()
			require.NoError(t, tt.call(NewClient(doer)))

			req := doer.Last()
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.body, req.Body)
		})
	}
}
