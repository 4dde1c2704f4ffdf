// Package report is the feature client for the data analysis endpoints.
// The chart payloads vary per endpoint and are passed through undecoded.
package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

// Defaults applied when the caller passes zero.
const (
	DefaultTrendDays   = 30
	DefaultHotLimit    = 10
	CustomDateLayout   = "2006-01-02"
	analysisPathPrefix = "/data/analysis"
)

// Trend names the day-windowed series.
type Trend string

const (
	TrendProduct      Trend = "product"
	TrendUserRegister Trend = "user-register"
	TrendOrder        Trend = "order"
	TrendOrderAmount  Trend = "order-amount"
	TrendUserActive   Trend = "user-active"
)

var trendPaths = map[Trend]string{
	TrendProduct:      "/product/trend",
	TrendUserRegister: "/user/register/trend",
	TrendOrder:        "/order/trend",
	TrendOrderAmount:  "/order/amount/trend",
	TrendUserActive:   "/user/active",
}

// Trends lists every Trend.
func Trends() []Trend {
	return []Trend{TrendProduct, TrendUserRegister, TrendOrder, TrendOrderAmount, TrendUserActive}
}

// Breakdown names the snapshot distributions.
type Breakdown string

const (
	BreakdownProductCategory   Breakdown = "product-category"
	BreakdownProductPriceRange Breakdown = "product-price-range"
	BreakdownProductCondition  Breakdown = "product-condition"
	BreakdownProductStatus     Breakdown = "product-status"
	BreakdownOrderStatus       Breakdown = "order-status"
)

var breakdownPaths = map[Breakdown]string{
	BreakdownProductCategory:   "/product/category",
	BreakdownProductPriceRange: "/product/price/range",
	BreakdownProductCondition:  "/product/condition",
	BreakdownProductStatus:     "/product/status",
	BreakdownOrderStatus:       "/order/status",
}

// Breakdowns lists every Breakdown.
func Breakdowns() []Breakdown {
	return []Breakdown{BreakdownProductCategory, BreakdownProductPriceRange, BreakdownProductCondition, BreakdownProductStatus, BreakdownOrderStatus}
}

// Client calls the data analysis endpoints.
type Client struct {
	doer httpclient.Doer
}

// NewClient creates a Client.
func NewClient(doer httpclient.Doer) *Client {
	return &Client{doer: doer}
}

// Summary returns the dashboard summary.
func (c *Client) Summary(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/summary", nil)
}

// Breakdown returns one distribution.
func (c *Client) Breakdown(ctx context.Context, b Breakdown) (json.RawMessage, error) {
	path, ok := breakdownPaths[b]
	if !ok {
		return nil, &httpclient.RequestConfigError{Message: "unknown breakdown " + string(b)}
	}
	return c.get(ctx, path, nil)
}

// Trend returns a day-windowed series. days <= 0 means DefaultTrendDays.
func (c *Client) Trend(ctx context.Context, t Trend, days int) (json.RawMessage, error) {
	path, ok := trendPaths[t]
	if !ok {
		return nil, &httpclient.RequestConfigError{Message: "unknown trend " + string(t)}
	}
	if days <= 0 {
		days = DefaultTrendDays
	}
	return c.get(ctx, path, httpclient.Params{}.Int("days", days))
}

// HotProducts returns the most viewed products. limit <= 0 means
// DefaultHotLimit.
func (c *Client) HotProducts(ctx context.Context, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = DefaultHotLimit
	}
	return c.get(ctx, "/product/hot", httpclient.Params{}.Int("limit", limit))
}

// Custom returns the analysis for an inclusive date range.
func (c *Client) Custom(ctx context.Context, start, end time.Time) (json.RawMessage, error) {
	params := httpclient.Params{
		"startDate": start.Format(CustomDateLayout),
		"endDate":   end.Format(CustomDateLayout),
	}
	return c.get(ctx, "/custom", params)
}

func (c *Client) get(ctx context.Context, path string, params httpclient.Params) (json.RawMessage, error) {
	return httpclient.Call[json.RawMessage](ctx, c.doer, httpclient.Get(analysisPathPrefix+path, params))
}
