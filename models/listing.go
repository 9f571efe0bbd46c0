package models

import "time"

// Property is a rentable accommodation listing. Only the fields the booking
// core needs are modelled; the full listing document lives with the CRUD
// layer.
type Property struct {
	ID            string    `bson:"id" json:"id"`
	OwnerID       string    `bson:"owner_id" json:"owner_id"`
	Title         string    `bson:"title" json:"title"`
	PricePerNight float64   `bson:"price_per_night" json:"price_per_night"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// Vehicle is a rentable vehicle listing.
type Vehicle struct {
	ID          string    `bson:"id" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	Title       string    `bson:"title" json:"title"`
	PricePerDay float64   `bson:"price_per_day" json:"price_per_day"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
