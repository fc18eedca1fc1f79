package entity

import "time"

const (
	DisputeTypeOrder    = "ORDER"
	DisputeTypeDelivery = "DELIVERY"
	DisputeTypePayment  = "PAYMENT"
	DisputeTypeProduct  = "PRODUCT"
)

const (
	DisputeStatusOpen     = "OPEN"
	DisputeStatusInReview = "IN_REVIEW"
	DisputeStatusResolved = "RESOLVED"
	DisputeStatusRejected = "REJECTED"
)

type Dispute struct {
	ID          int              `json:"id"`
	CreatedByID int              `json:"created_by_id"`
	AssignedTo  *int             `json:"assigned_to,omitempty"`
	OrderID     *int             `json:"order_id,omitempty"`
	DisputeType string           `json:"dispute_type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Resolution  string           `json:"resolution,omitempty"`
	Messages    []DisputeMessage `json:"messages,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type DisputeMessage struct {
	ID        int       `json:"id"`
	DisputeID int       `json:"dispute_id"`
	SenderID  int       `json:"sender_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
