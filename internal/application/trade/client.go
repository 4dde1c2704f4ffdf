// Package trade is the feature client for orders and shipping addresses.
package trade

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

// Address is the delivery address embedded in an order.
type Address struct {
	ReceiverName  string `json:"receiverName" validate:"required"`
	ReceiverPhone string `json:"receiverPhone" validate:"required"`
	Province      string `json:"province" validate:"required"`
	City          string `json:"city" validate:"required"`
	District      string `json:"district"`
	DetailAddress string `json:"detailAddress" validate:"required"`
}

// CreateRequest places an order.
type CreateRequest struct {
	ProductID     int64            `json:"productId" validate:"required"`
	SellerID      int64            `json:"sellerId" validate:"required"`
	PaymentType   int              `json:"paymentType"`
	DeliveryType  int              `json:"deliveryType"`
	OrderAmount   decimal.Decimal  `json:"orderAmount"`
	PaymentAmount decimal.Decimal  `json:"paymentAmount"`
	DeliveryFee   *decimal.Decimal `json:"deliveryFee,omitempty"`
	Remark        string           `json:"remark,omitempty"`
	Address       Address          `json:"address"`
}

// PayRequest pays for an order.
type PayRequest struct {
	PayMethod  int    `json:"payMethod" validate:"required"`
	PayAccount string `json:"payAccount,omitempty"`
}

// ShipRequest records the shipment of an order.
type ShipRequest struct {
	ExpressCompany string `json:"expressCompany" validate:"required"`
	ExpressNo      string `json:"expressNo" validate:"required"`
}

// ListQuery filters the order list. Absent filters are not sent.
type ListQuery struct {
	Status *int
	shared.PageQuery
}

// Order is an order as returned by the list and detail endpoints.
type Order struct {
	OrderID       int64           `json:"orderId"`
	OrderNo       string          `json:"orderNo,omitempty"`
	ProductID     int64           `json:"productId"`
	BuyerID       int64           `json:"buyerId,omitempty"`
	SellerID      int64           `json:"sellerId,omitempty"`
	OrderAmount   decimal.Decimal `json:"orderAmount"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	Status        int             `json:"status"`
	StatusDesc    string          `json:"statusDesc,omitempty"`
	CreateTime    string          `json:"createTime,omitempty"`
}

// Client calls the order and shipping endpoints.
type Client struct {
	doer httpclient.Doer
}

// NewClient creates a Client.
func NewClient(doer httpclient.Doer) *Client {
	return &Client{doer: doer}
}

// Create places an order and returns what the backend answers with.
func (c *Client) Create(ctx context.Context, req CreateRequest) (json.RawMessage, error) {
	return httpclient.Call[json.RawMessage](ctx, c.doer, httpclient.Post("/order/create", req))
}

// List returns a page of orders.
func (c *Client) List(ctx context.Context, q ListQuery) (shared.PageResult[Order], error) {
	params := httpclient.Params{}.
		OptInt("status", q.Status).
		OptInt("pageNum", q.PageNum).
		OptInt("pageSize", q.PageSize)
	return httpclient.Call[shared.PageResult[Order]](ctx, c.doer, httpclient.Get("/order/list", params))
}

// Detail returns one order.
func (c *Client) Detail(ctx context.Context, orderID int64) (*Order, error) {
	return httpclient.Call[*Order](ctx, c.doer, httpclient.Get(fmt.Sprintf("/order/detail/%d", orderID), nil))
}

// Cancel cancels an order.
func (c *Client) Cancel(ctx context.Context, orderID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post(fmt.Sprintf("/order/cancel/%d", orderID), nil))
}

// Pay pays for an order.
func (c *Client) Pay(ctx context.Context, orderID int64, req PayRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post(fmt.Sprintf("/order/pay/%d", orderID), req))
}

// Confirm confirms receipt of an order.
func (c *Client) Confirm(ctx context.Context, orderID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post(fmt.Sprintf("/order/confirm/%d", orderID), nil))
}

// Ship records the shipment of an order.
func (c *Client) Ship(ctx context.Context, orderID int64, req ShipRequest) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Post(fmt.Sprintf("/order/ship/%d", orderID), req))
}

// DeleteShippingAddress removes a shipping address.
func (c *Client) DeleteShippingAddress(ctx context.Context, addressID int64) error {
	return httpclient.Exec(ctx, c.doer, httpclient.Delete(fmt.Sprintf("/shipping/address/delete/%d", addressID)))
}
