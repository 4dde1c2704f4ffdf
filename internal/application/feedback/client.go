// Package feedback is the feature client for user feedback handling.
package feedback

import (
	"context"
	"fmt"
	"strconv"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

// Item is one piece of feedback.
type Item struct {
	FeedbackID        int64    `json:"feedbackId"`
	UserID            int64    `json:"userId"`
	Username          string   `json:"username"`
	FeedbackType      Type     `json:"feedbackType"`
	FeedbackTypeDesc  string   `json:"feedbackTypeDesc"`
	FeedbackTitle     string   `json:"feedbackTitle"`
	FeedbackContent   string   `json:"feedbackContent"`
	ContactInfo       string   `json:"contactInfo"`
	Images            string   `json:"images"`
	Status            Status   `json:"status"`
	StatusDesc        string   `json:"statusDesc"`
	PriorityLevel     Priority `json:"priorityLevel"`
	PriorityLevelDesc string   `json:"priorityLevelDesc"`
	AdminID           *int64   `json:"adminId,omitempty"`
	AdminReply        string   `json:"adminReply,omitempty"`
	ReplyTime         string   `json:"replyTime,omitempty"`
	CreatedTime       string   `json:"createdTime"`
}

// ListQuery filters the feedback list. Absent filters are not sent.
type ListQuery struct {
	Status       *int
	FeedbackType *int
	shared.PageQuery
}

// ReplyRequest answers a feedback item and moves it to status.
type ReplyRequest struct {
	FeedbackID int64  `json:"feedbackId" validate:"required"`
	AdminReply string `json:"adminReply" validate:"required"`
	Status     Status `json:"status" validate:"min=0,max=2"`
}

// Count summarises feedback by status, type and priority.
type Count struct {
	TotalCount       int64 `json:"totalCount"`
	UnprocessedCount int64 `json:"unprocessedCount"`
	ProcessingCount  int64 `json:"processingCount"`
	ProcessedCount   int64 `json:"processedCount"`
	TypeCounts       struct {
		Type1Count int64 `json:"type1Count"`
		Type2Count int64 `json:"type2Count"`
		Type3Count int64 `json:"type3Count"`
		Type4Count int64 `json:"type4Count"`
		Type5Count int64 `json:"type5Count"`
	} `json:"typeCounts"`
	PriorityCounts struct {
		NormalCount    int64 `json:"normalCount"`
		ImportantCount int64 `json:"importantCount"`
		UrgentCount    int64 `json:"urgentCount"`
	} `json:"priorityCounts"`
}

// Client calls the feedback endpoints.
type Client struct {
	doer httpclient.Doer
}

// NewClient creates a Client.
func NewClient(doer httpclient.Doer) *Client {
	return &Client{doer: doer}
}

// List returns a page of feedback.
func (c *Client) List(ctx context.Context, q ListQuery) (shared.PageResult[Item], error) {
	params := httpclient.Params{}.
		OptInt("pageNum", q.PageNum).
		OptInt("pageSize", q.PageSize).
		OptInt("status", q.Status).
		OptInt("feedbackType", q.FeedbackType)
	return httpclient.Call[shared.PageResult[Item]](ctx, c.doer, httpclient.Get("/admin/feedback/list", params))
}

// Detail returns one feedback item.
func (c *Client) Detail(ctx context.Context, feedbackID int64) (*Item, error) {
	return httpclient.Call[*Item](ctx, c.doer, httpclient.Get(fmt.Sprintf("/feedback/detail/%d", feedbackID), nil))
}

// Reply answers a feedback item.
func (c *Client) Reply(ctx context.Context, req ReplyRequest) (bool, error) {
	return httpclient.Call[bool](ctx, c.doer, httpclient.Post("/admin/feedback/reply", req))
}

// SetPriority changes the priority of a feedback item. The backend reads
// both values from the query string and expects no body.
func (c *Client) SetPriority(ctx context.Context, feedbackID int64, level Priority) (bool, error) {
	req := httpclient.Request{
		Method: "PUT",
		Path:   "/admin/feedback/priority",
		Params: httpclient.Params{
			"feedbackId":    strconv.FormatInt(feedbackID, 10),
			"priorityLevel": strconv.Itoa(int(level)),
		},
	}
	return httpclient.Call[bool](ctx, c.doer, req)
}

// Count returns the feedback summary.
func (c *Client) Count(ctx context.Context) (Count, error) {
	return httpclient.Call[Count](ctx, c.doer, httpclient.Get("/admin/feedback/count", nil))
}
