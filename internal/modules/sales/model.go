package sales

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a storefront order: the jean variant the
// customer configured plus their measurements.
type CartItem struct {
	ID              string  `json:"_id,omitempty" bson:"_id,omitempty"`
	ColorName       string  `json:"colorName" bson:"colorName"`
	ColorImage      string  `json:"colorImage" bson:"colorImage"`
	FabricName      string  `json:"fabricName" bson:"fabricName"`
	FrontPocketName string  `json:"frontPocketName" bson:"frontPocketName"`
	BackPocketName  string  `json:"backPocketName" bson:"backPocketName"`
	Waist           float64 `json:"waist" bson:"waist"`
	Length          float64 `json:"length" bson:"length"`
	Price           float64 `json:"price" bson:"price"`
	Quantity        int     `json:"quantity" bson:"quantity"`
}

// Order is a submitted sales order. Orders are created by the
// storefront; this system only reads them.
type Order struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName   string             `json:"firstName" bson:"firstName"`
	LastName    string             `json:"lastName" bson:"lastName"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Street      string             `json:"street" bson:"street"`
	City        string             `json:"city" bson:"city"`
	State       string             `json:"state" bson:"state"`
	PostalCode  string             `json:"postalCode" bson:"postalCode"`
	Note        string             `json:"note,omitempty" bson:"note,omitempty"`
	CartItems   []CartItem         `json:"cartItems" bson:"cartItems"`
	TotalPrice  float64            `json:"totalPrice" bson:"totalPrice"`
}
