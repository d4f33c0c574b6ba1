package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID accepts either a JSON number or a JSON string.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or a string")
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) Int() (int, error) {
	return strconv.Atoi(string(f))
}

// Price accepts 12.5 as well as "12.5".
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not a number", s)
		}
		*p = Price(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CartItemRequest struct {
	ItemID FlexID `json:"itemId" validate:"required"`
}

type AddProductRequest struct {
	Name     string `json:"name"      validate:"required"`
	Image    string `json:"image"`
	Category string `json:"category"`
	NewPrice Price  `json:"new_price" validate:"gte=0"`
	OldPrice Price  `json:"old_price" validate:"gte=0"`
}

type RemoveProductRequest struct {
	ID   FlexID `json:"id"   validate:"required"`
	Name string `json:"name"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

type ProductAck struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type UploadResponse struct {
	Success  int    `json:"success"`
	ImageURL string `json:"image_url,omitempty"`
	Message  string `json:"message,omitempty"`
}

type SearchResponse struct {
	Total    int64 `json:"total"`
	Products any   `json:"products"`
}
