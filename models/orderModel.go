package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

const PaymentMethodCOD = "COD"

// OrderItem snapshots the product at purchase time.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"product"`
	Name      string  `json:"name,omitempty" bson:"name,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// CustomerInfo is stored on the order itself so guest and registered
// orders have the same shape.
type CustomerInfo struct {
	FirstName  string `json:"firstName" bson:"firstName"`
	LastName   string `json:"lastName" bson:"lastName"`
	Email      string `json:"email" bson:"email"`
	Phone      string `json:"phone" bson:"phone"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

type TrackingEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Message   string      `json:"message" bson:"message"`
	Location  string      `json:"location,omitempty" bson:"location,omitempty"`
	By        string      `json:"by,omitempty" bson:"by,omitempty"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

type Order struct {
	Model             `bson:",inline"`
	UserID            *string                            `json:"userId" bson:"userId" gorm:"size:64;index"`
	Items             datatypes.JSONSlice[OrderItem]     `json:"items" bson:"products"`
	TotalAmount       float64                            `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod     string                             `json:"paymentMethod" bson:"paymentMethod" gorm:"size:64"`
	PaymentStatus     string                             `json:"paymentStatus,omitempty" bson:"paymentStatus,omitempty" gorm:"size:64"`
	PaymentTrackingID string                             `json:"paymentTrackingId,omitempty" bson:"paymentTrackingId,omitempty" gorm:"size:128;index"`
	Status            OrderStatus                        `json:"status" bson:"status" gorm:"size:32;index"`
	CustomerInfo      CustomerInfo                       `json:"customerInfo" bson:"customerInfo" gorm:"embedded;embeddedPrefix:customer_"`
	Tracking          datatypes.JSONSlice[TrackingEntry] `json:"tracking" bson:"tracking"`
}

func (o *Order) IsGuest() bool {
	return o.UserID == nil || *o.UserID == ""
}
