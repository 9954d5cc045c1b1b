// Package model defines the persisted record shapes used by the storefront.
package model

import "time"

// LineItem is one distinct product in the cart. Name is the identity key.
type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Checkout is the snapshot written when an order is placed.
type Checkout struct {
	When time.Time  `json:"when"`
	Cart []LineItem `json:"cart"`
}

// Feedback is a rating left by a visitor.
type Feedback struct {
	Rating string    `json:"rating"`
	Text   string    `json:"text"`
	TS     time.Time `json:"ts"`
}

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	TS      time.Time `json:"ts"`
}

// CustomOrder is a saved custom drink order.
type CustomOrder struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Drink string `json:"drink"`
	Qty   int    `json:"qty"`
	Notes string `json:"notes"`
}
