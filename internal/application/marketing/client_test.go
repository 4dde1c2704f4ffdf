package marketing

import (
	"context"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
	"github.com/secondhand/console/internal/testutil/fakedoer"
)

func TestUpdateStatusUsesQueryParams(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodPut, "/admin/promotion/status", true)
	c := NewClient(doer)

	ok, err := c.UpdateStatus(context.Background(), 12, StatusOnline)
	require.NoError(t, err)
	assert.True(t, ok)

	req := doer.Last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/admin/promotion/status", req.Path)
	assert.Equal(t, httpclient.Params{"promotionId": "12", "status": "1"}, req.Params)
	assert.Nil(t, req.Body)
}

func TestAdd(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodPost, "/admin/promotion/add", 77)
	c := NewClient(doer)

	req := AddRequest{
		Title:         gofakeit.Sentence(3),
		PromotionType: 1,
		StartTime:     "2026-01-01 00:00:00",
		EndTime:       "2026-02-01 00:00:00",
		Status:        StatusOffline,
		Images:        []ImageRequest{{ImageURL: "/upload/banner.png", ImageType: 1}},
	}
	id, err := c.Add(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
	assert.Equal(t, req, doer.Last().Body)
}

func TestList(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodGet, "/admin/promotion/list", map[string]any{
		"list":  []map[string]any{{"promotionId": 1, "title": "spring sale", "status": 1}},
		"total": 1, "pageNum": 1, "pageSize": 10, "pages": 1, "hasNext": false,
	})
	c := NewClient(doer)

	status := StatusOnline
	page, err := c.List(context.Background(), ListQuery{Title: "sale", Status: &status, PageQuery: shared.Page(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, httpclient.Params{"title": "sale", "status": "1", "pageNum": "1", "pageSize": "10"}, doer.Last().Params)
	require.Len(t, page.List, 1)
	assert.Equal(t, "spring sale", page.List[0].Title)
	assert.Equal(t, 1, page.Pages)
}

func TestActiveLimit(t *testing.T) {
	doer := fakedoer.New()
	c := NewClient(doer)

	_, err := c.Active(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, doer.Last().Params)

	limit := 8
	_, err = c.Active(context.Background(), &limit)
	require.NoError(t, err)
	assert.Equal(t, httpclient.Params{"limit": "8"}, doer.Last().Params)
	assert.Equal(t, "/promotion/active", doer.Last().Path)
}

func TestDescriptors(t *testing.T) {
	ctx := context.Background()
	update := UpdateRequest{PromotionID: 3, AddRequest: AddRequest{Title: "t", PromotionType: 2, StartTime: "a", EndTime: "b"}}

	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		body   any
	}{
		{"update", func(c *Client) error { _, err := c.Update(ctx, update); return err }, http.MethodPut, "/admin/promotion/update", update},
		{"delete", func(c *Client) error { _, err := c.Delete(ctx, 3); return err }, http.MethodDelete, "/admin/promotion/delete/3", nil},
		{"detail", func(c *Client) error { _, err := c.Detail(ctx, 3); return err }, http.MethodGet, "/promotion/detail/3", nil},
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
