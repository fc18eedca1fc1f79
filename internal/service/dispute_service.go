package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
)

type DisputeService struct {
	disputes repository.DisputeRepository
	orders   repository.OrderRepository
}

func NewDisputeService(disputes repository.DisputeRepository, orders repository.OrderRepository) *DisputeService {
	return &DisputeService{disputes: disputes, orders: orders}
}

// Create opens a dispute. A dispute referencing an order may only be opened
// by that order's owner.
func (s *DisputeService) Create(ctx context.Context, userID int, d *entity.Dispute) (*entity.Dispute, error) {
	if d.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	switch d.DisputeType {
	case entity.DisputeTypeOrder, entity.DisputeTypeDelivery, entity.DisputeTypePayment, entity.DisputeTypeProduct:
	default:
		return nil, fmt.Errorf("%w: unknown dispute type %q", ErrInvalidInput, d.DisputeType)
	}

	if d.OrderID != nil {
		order, err := s.orders.GetByID(ctx, *d.OrderID)
		if err != nil {
			return nil, err
		}
		if order.UserID != userID {
			return nil, ErrPermissionDenied
		}
	}

	now := time.Now().UTC()
	d.CreatedByID = userID
	d.Status = entity.DisputeStatusOpen
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.disputes.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns a dispute with its messages. Only participants may read it.
func (s *DisputeService) Get(ctx context.Context, userID, id int) (*entity.Dispute, error) {
	d, err := s.disputes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParticipant(d, userID) {
		return nil, ErrPermissionDenied
	}
	return d, nil
}

// ListForUser returns the disputes the user created or is assigned to.
func (s *DisputeService) ListForUser(ctx context.Context, userID int, f repository.DisputeFilter) ([]entity.Dispute, error) {
	f.ParticipantID = &userID
	return s.disputes.List(ctx, f)
}

// AddMessage appends a message to a dispute thread. Participants only, and
// closed disputes accept no further messages.
func (s *DisputeService) AddMessage(ctx context.Context, userID, disputeID int, text string) (*entity.DisputeMessage, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	d, err := s.disputes.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(d, userID) {
		return nil, ErrPermissionDenied
	}
	if d.Status == entity.DisputeStatusResolved || d.Status == entity.DisputeStatusRejected {
		return nil, fmt.Errorf("%w: dispute is closed", ErrInvalidInput)
	}

	m := &entity.DisputeMessage{
		DisputeID: disputeID,
		SenderID:  userID,
		Message:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.disputes.AddMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve closes a dispute with a resolution. Only the assignee may resolve.
func (s *DisputeService) Resolve(ctx context.Context, userID, disputeID int, status, resolution string) (*entity.Dispute, error) {
	if status != entity.DisputeStatusResolved && status != entity.DisputeStatusRejected {
		return nil, fmt.Errorf("%w: resolution status must be %s or %s", ErrInvalidInput, entity.DisputeStatusResolved, entity.DisputeStatusRejected)
	}

	d, err := s.disputes.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if d.AssignedTo == nil || *d.AssignedTo != userID {
		return nil, ErrPermissionDenied
	}

	d.Status = status
	d.Resolution = resolution
	d.UpdatedAt = time.Now().UTC()
	if err := s.disputes.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func isParticipant(d *entity.Dispute, userID int) bool {
	if d.CreatedByID == userID {
		return true
	}
	return d.AssignedTo != nil && *d.AssignedTo == userID
}
