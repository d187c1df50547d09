package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Decimal keeps a money amount as its decimal text. The shop API sends
// amounts either as JSON numbers or as quoted strings.
type Decimal string

func (d Decimal) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	if err := checkDecimal(string(d)); err != nil {
		return nil, err
	}
	return []byte(d), nil
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	if err := checkDecimal(string(data)); err != nil {
		return err
	}
	*d = Decimal(data)
	return nil
}

var decimalPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// checkDecimal accepts finite amounts written as JSON numbers, which rules
// out NaN, Inf and hex floats.
func checkDecimal(s string) error {
	if !decimalPattern.MatchString(s) {
		return fmt.Errorf("decimal %q: not a JSON number", s)
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("decimal %q: %w", s, err)
	}
	return nil
}

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductCard is the short product shape used by banners, catalog lists,
// basket entries and ordered products.
type ProductCard struct {
	ID           int      `json:"id"`
	Category     int      `json:"category"`
	Price        Decimal  `json:"price"`
	Count        int      `json:"count"`
	Date         string   `json:"date,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	FreeDelivery bool     `json:"freeDelivery"`
	Images       []Image  `json:"images"`
	Tags         []Tag    `json:"tags"`
	Reviews      int      `json:"reviews"`
	Rating       *float64 `json:"rating"`
}

type Banner = ProductCard

type OrderedProduct = ProductCard

type Review struct {
	Author string `json:"author"`
	Email  string `json:"email"`
	Text   string `json:"text"`
	Rate   *int   `json:"rate"`
	Date   string `json:"date,omitempty"`
}

type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Product struct {
	ID              int             `json:"id,omitempty"`
	Category        int             `json:"category,omitempty"`
	Price           Decimal         `json:"price,omitempty"`
	Count           int             `json:"count,omitempty"`
	Date            string          `json:"date,omitempty"`
	Title           string          `json:"title,omitempty"`
	Description     string          `json:"description,omitempty"`
	FullDescription string          `json:"fullDescription,omitempty"`
	FreeDelivery    bool            `json:"freeDelivery,omitempty"`
	Images          []Image         `json:"images,omitempty"`
	Tags            []Tag           `json:"tags,omitempty"`
	Reviews         []Review        `json:"reviews,omitempty"`
	Specifications  []Specification `json:"specifications,omitempty"`
	Rating          *float64        `json:"rating,omitempty"`
}

type Order struct {
	ID           *int             `json:"id"`
	CreatedAt    *string          `json:"createdAt"`
	FullName     *string          `json:"fullName"`
	Phone        *string          `json:"phone"`
	Email        *string          `json:"email"`
	DeliveryType *string          `json:"deliveryType"`
	City         *string          `json:"city"`
	Address      *string          `json:"address"`
	Comment      *string          `json:"comment"`
	PaymentType  *string          `json:"paymentType"`
	Status       *string          `json:"status"`
	DeliveryCost Decimal          `json:"deliveryCost"`
	TotalCost    Decimal          `json:"totalCost"`
	Paid         *bool            `json:"paid"`
	Products     []OrderedProduct `json:"products"`
	PaymentError *string          `json:"paymentError,omitempty"`
}

type Profile struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Avatar   *Image `json:"avatar"`
}

type CreatedOrder struct {
	OrderID int `json:"orderId"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type PasswordChange struct {
	Password string `json:"password"`
}

type Payment struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Year   string `json:"year"`
	Month  string `json:"month"`
	Code   string `json:"code"`
}
