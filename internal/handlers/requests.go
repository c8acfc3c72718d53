package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// lenientInt decodes a JSON number or numeric string. Anything else, null
// included, decodes to 0 instead of failing the request.
type lenientInt int

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*n = lenientInt(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*n = lenientInt(i)
		}
	}
	return nil
}

func (n *lenientInt) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	FullName  string `json:"full_name" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"max=30"`
	Building  string `json:"building" validate:"max=10"`
	Floor     string `json:"floor" validate:"max=10"`
	Apartment string `json:"apartment" validate:"max=10"`
}

type createUserRequest struct {
	registerRequest
	Role string `json:"role" validate:"required"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type storeRequest struct {
	Name            string           `json:"name" validate:"required,max=120"`
	Description     string           `json:"description"`
	Category        string           `json:"category" validate:"max=50"`
	MinOrderAmount  *decimal.Decimal `json:"min_order_amount"`
	DeliveryFee     *decimal.Decimal `json:"delivery_fee"`
	ProfileImageURL *string          `json:"profile_image_url" validate:"omitempty,max=255"`
}

type productRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=150"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,max=255"`
	Stock       *lenientInt      `json:"stock"`
	IsActive    *bool            `json:"is_active"`
}

type orderItemRequest struct {
	ProductID string     `json:"product_id" validate:"required"`
	Quantity  lenientInt `json:"quantity"`
}

type createOrderRequest struct {
	StoreID        string             `json:"store_id" validate:"required"`
	Items          []orderItemRequest `json:"items" validate:"dive"`
	DeliveryMethod string             `json:"delivery_method"`
	Notes          string             `json:"notes" validate:"max=255"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type reviewRequest struct {
	Rating  lenientInt `json:"rating"`
	Comment string     `json:"comment"`
}
