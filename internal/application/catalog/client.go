// Package catalog is the feature client for products: listings, images,
// favourites, reports and trade methods.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

// Product is a listing as returned by the detail and list endpoints.
type Product struct {
	ProductID      int64           `json:"productId"`
	SellerID       int64           `json:"sellerId,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	CategoryID     int64           `json:"categoryId"`
	ConditionLevel int             `json:"conditionLevel"`
	Location       string          `json:"location,omitempty"`
	Status         int             `json:"status"`
	MainImage      string          `json:"mainImage,omitempty"`
	Images         []Image         `json:"images,omitempty"`
	CreateTime     string          `json:"createTime,omitempty"`
}

// Image is one picture of a listing.
type Image struct {
	ImageID   int64  `json:"imageId,omitempty"`
	ImageURL  string `json:"imageUrl"`
	IsMain    int    `json:"isMain"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

// AddRequest creates a listing.
type AddRequest struct {
	Title          string          `json:"title" validate:"required"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	CategoryID     int64           `json:"categoryId" validate:"required"`
	ConditionLevel int             `json:"conditionLevel"`
	Location       string          `json:"location"`
}

// UpdateRequest changes a listing. Nil fields are left alone.
type UpdateRequest struct {
	ProductID      int64            `json:"productId" validate:"required"`
	Title          *string          `json:"title,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice,omitempty"`
	CategoryID     *int64           `json:"categoryId,omitempty"`
	ConditionLevel *int             `json:"conditionLevel,omitempty"`
	Location       *string          `json:"location,omitempty"`
}

// ListQuery filters the product list. Absent filters are not sent.
type ListQuery struct {
	CategoryID *int64
	Keyword    string
	Status     *int
	shared.PageQuery
}

// ImageRequest attaches an image to a listing.
type ImageRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	ImageURL  string `json:"imageUrl" validate:"required"`
	IsMain    int    `json:"isMain" validate:"oneof=0 1"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// ReportRequest reports a listing.
type ReportRequest struct {
	ProductID     int64  `json:"productId" validate:"required"`
	ReportType    int    `json:"reportType" validate:"required"`
	ReportContent string `json:"reportContent" validate:"required"`
}

// TradeMethodRequest adds a trade method.
type TradeMethodRequest struct {
	MethodName string `json:"methodName" validate:"required"`
	MethodDesc string `json:"methodDesc"`
}

type favoriteRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
}

// Client calls the product endpoints.
type Client struct {
	doer httpclient.Doer
}

// NewClient creates a Client.
func NewClient(doer httpclient.Doer) *Client {
	return &Client{doer: doer}
}

// Add creates a listing and returns what the backend answers with.
func (c *Client) Add(ctx context.Context, req AddRequest) (json.RawMessage, error) {
	return httpclient.Call[json.RawMessage](ctx, c.doer, httpclient.Post("/product/add", req))
}

// List returns a page of listings.
func (c *Client) List(ctx context.Context, q ListQuery) (shared.PageResult[Product], error) {
	params := httpclient.Params{}.
		OptInt64("categoryId", q.CategoryID).
		OptString("keyword", q.Keyword).
		OptInt("status", q.Status).
		OptInt("pageNum", q.PageNum).
		OptInt("pageSize", q.PageSize)
	return httpclient.Call[shared.PageResult[Product]](ctx, c.doer, httpclient.Get("/product/list", params))
}

// Detail returns one listing.
func (c *Client) Detail(ctx context.Context, productID int64) (*Product, error) {
	return httpclient.Call[*Product](ctx, c.doer, httpclient.Get(fmt.Sprintf("/product/detail/%d", productID), nil))
}

// Update changes a listing.
func (c *Client) Update(ctx context.Context, req UpdateRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Put("/product/update", req))
}

// Delete removes a listing.
func (c *Client) Delete(ctx context.Context, productID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Delete(fmt.Sprintf("/product/delete/%d", productID)))
}

// AddFavorite adds a listing to the operator's favourites.
func (c *Client) AddFavorite(ctx context.Context, productID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post("/product/favorite/add", favoriteRequest{productID}))
}

// RemoveFavorite removes a listing from the favourites.
func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Delete(fmt.Sprintf("/product/favorite/%d", productID)))
}

// Favorites lists the favourites.
func (c *Client) Favorites(ctx context.Context) ([]Product, error) {
	return httpclient.Call[[]Product](ctx, c.doer, httpclient.Get("/product/favorite/list", nil))
}

// AddImage attaches an image.
func (c *Client) AddImage(ctx context.Context, req ImageRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post("/product/image/add", req))
}

// DeleteImage detaches an image.
func (c *Client) DeleteImage(ctx context.Context, productID, imageID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Delete(fmt.Sprintf("/product/image/%d/%d", productID, imageID)))
}

// Report files a report against a listing.
func (c *Client) Report(ctx context.Context, req ReportRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post("/product/report/add", req))
}

// Reports lists the reports filed against a listing.
func (c *Client) Reports(ctx context.Context, productID int64) (json.RawMessage, error) {
	return httpclient.Call[json.RawMessage](ctx, c.doer, httpclient.Get(fmt.Sprintf("/product/report/list/%d", productID), nil))
}

// AddTradeMethod adds a trade method.
func (c *Client) AddTradeMethod(ctx context.Context, req TradeMethodRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post("/product/trade/method/add", req))
}
