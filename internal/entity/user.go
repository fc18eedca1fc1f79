package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	UserTypeIndividual     = "INDIVIDUAL"
	UserTypeRetailer       = "RETAILER"
	UserTypeWholesaler     = "WHOLESALER"
	UserTypeSemiWholesaler = "SEMI_WHOLESALER"
	UserTypeManufacturer   = "MANUFACTURER"
)

type User struct {
	ID           int             `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	UserType     string          `json:"user_type"`
	PhoneNumber  string          `json:"phone_number"`
	IsVerified   bool            `json:"is_verified"`
	TokenBalance decimal.Decimal `json:"token_balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsSeller reports whether the user sells through retail points.
func (u *User) IsSeller() bool {
	switch u.UserType {
	case UserTypeRetailer, UserTypeWholesaler, UserTypeSemiWholesaler:
		return true
	}
	return false
}

type Address struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id"`
	District       string `json:"district"`
	Region         string `json:"region"`
	Commune        string `json:"commune"`
	Street         string `json:"street"`
	GPSCoordinates string `json:"gps_coordinates,omitempty"`
	IsPrimary      bool   `json:"is_primary"`
}
