// Package marketing is the feature client for promotions.
package marketing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

// Promotion statuses.
const (
	StatusOffline = 0
	StatusOnline  = 1
)

// Image is a picture attached to a promotion.
type Image struct {
	ImageID       int64  `json:"imageId,omitempty"`
	PromotionID   int64  `json:"promotionId,omitempty"`
	ImageURL      string `json:"imageUrl"`
	ImageType     int    `json:"imageType"`
	ImageTypeDesc string `json:"imageTypeDesc,omitempty"`
	SortOrder     int    `json:"sortOrder,omitempty"`
	CreatedTime   string `json:"createdTime,omitempty"`
}

// ImageRequest attaches an image when creating or updating a promotion.
type ImageRequest struct {
	ImageURL  string `json:"imageUrl" validate:"required"`
	ImageType int    `json:"imageType"`
	SortOrder *int   `json:"sortOrder,omitempty"`
}

// Promotion is a marketing campaign.
type Promotion struct {
	PromotionID       int64   `json:"promotionId"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	PromotionType     int     `json:"promotionType"`
	PromotionTypeDesc string  `json:"promotionTypeDesc,omitempty"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	Status            int     `json:"status"`
	StatusDesc        string  `json:"statusDesc,omitempty"`
	SortOrder         int     `json:"sortOrder,omitempty"`
	URLLink           string  `json:"urlLink,omitempty"`
	CreatedBy         int64   `json:"createdBy,omitempty"`
	CreatedByUsername string  `json:"createdByUsername,omitempty"`
	CreatedTime       string  `json:"createdTime,omitempty"`
	UpdatedTime       string  `json:"updatedTime,omitempty"`
	Images            []Image `json:"images,omitempty"`
}

// AddRequest creates a promotion.
type AddRequest struct {
	Title         string         `json:"title" validate:"required"`
	Description   string         `json:"description,omitempty"`
	PromotionType int            `json:"promotionType" validate:"required"`
	StartTime     string         `json:"startTime" validate:"required"`
	EndTime       string         `json:"endTime" validate:"required"`
	Status        int            `json:"status" validate:"oneof=0 1"`
	SortOrder     *int           `json:"sortOrder,omitempty"`
	URLLink       string         `json:"urlLink,omitempty" validate:"omitempty,url"`
	Images        []ImageRequest `json:"images,omitempty" validate:"dive"`
}

// UpdateRequest replaces a promotion.
type UpdateRequest struct {
	PromotionID int64 `json:"promotionId" validate:"required"`
	AddRequest
}

// ListQuery filters the promotion list. Absent filters are not sent.
type ListQuery struct {
	Title          string
	PromotionType  *int
	Status         *int
	StartTimeBegin string
	StartTimeEnd   string
	EndTimeBegin   string
	EndTimeEnd     string
	shared.PageQuery
}

// Client calls the promotion endpoints.
type Client struct {
	doer httpclient.Doer
}

// NewClient creates a Client.
func NewClient(doer httpclient.Doer) *Client {
	return &Client{doer: doer}
}

// Add creates a promotion and returns its ID.
func (c *Client) Add(ctx context.Context, req AddRequest) (int64, error) {
	return httpclient.Call[int64](ctx, c.doer, httpclient.Post("/admin/promotion/add", req))
}

// Update replaces a promotion.
func (c *Client) Update(ctx context.Context, req UpdateRequest) (bool, error) {
	return httpclient.Call[bool](ctx, c.doer, httpclient.Put("/admin/promotion/update", req))
}

// Delete removes a promotion.
func (c *Client) Delete(ctx context.Context, promotionID int64) (bool, error) {
	return httpclient.Call[bool](ctx, c.doer, httpclient.Delete(fmt.Sprintf("/admin/promotion/delete/%d", promotionID)))
}

// UpdateStatus takes a promotion on- or offline. The backend reads both
// values from the query string.
func (c *Client) UpdateStatus(ctx context.Context, promotionID int64, status int) (bool, error) {
	req := httpclient.Request{
		Method: "PUT",
		Path:   "/admin/promotion/status",
		Params: httpclient.Params{
			"promotionId": strconv.FormatInt(promotionID, 10),
			"status":      strconv.Itoa(status),
		},
	}
	return httpclient.Call[bool](ctx, c.doer, req)
}

// List returns a page of promotions.
func (c *Client) List(ctx context.Context, q ListQuery) (shared.PageResult[Promotion], error) {
	params := httpclient.Params{}.
		OptString("title", q.Title).
		OptInt("promotionType", q.PromotionType).
		OptInt("status", q.Status).
		OptString("startTimeBegin", q.StartTimeBegin).
		OptString("startTimeEnd", q.StartTimeEnd).
		OptString("endTimeBegin", q.EndTimeBegin).
		OptString("endTimeEnd", q.EndTimeEnd).
		OptInt("pageNum", q.PageNum).
		OptInt("pageSize", q.PageSize)
	return httpclient.Call[shared.PageResult[Promotion]](ctx, c.doer, httpclient.Get("/admin/promotion/list", params))
}

// Detail returns one promotion.
func (c *Client) Detail(ctx context.Context, promotionID int64) (*Promotion, error) {
	return httpclient.Call[*Promotion](ctx, c.doer, httpclient.Get(fmt.Sprintf("/promotion/detail/%d", promotionID), nil))
}

// Active lists the promotions currently shown to buyers. A nil limit
// leaves the count to the backend.
func (c *Client) Active(ctx context.Context, limit *int) ([]Promotion, error) {
	params := httpclient.Params{}.OptInt("limit", limit)
	return httpclient.Call[[]Promotion](ctx, c.doer, httpclient.Get("/promotion/active", params))
}
