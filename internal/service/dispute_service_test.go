package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
)

func TestDisputeCreateForOwnOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := checkoutOne(t, f)

	d, err := f.dispute.Create(ctx, f.buyer.ID, &entity.Dispute{
		OrderID:     &order.ID,
		DisputeType: entity.DisputeTypeDelivery,
		Title:       "Never arrived",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DisputeStatusOpen, d.Status)
	assert.Equal(t, f.buyer.ID, d.CreatedByID)

	// Someone else cannot dispute the buyer's order.
	_, err = f.dispute.Create(ctx, f.seller.ID, &entity.Dispute{
		OrderID:     &order.ID,
		DisputeType: entity.DisputeTypeDelivery,
		Title:       "Not mine",
	})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDisputeCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dispute.Create(ctx, f.buyer.ID, &entity.Dispute{DisputeType: entity.DisputeTypeOrder})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.dispute.Create(ctx, f.buyer.ID, &entity.Dispute{DisputeType: "VIBES", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDisputeMessagesParticipantsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.dispute.Create(ctx, f.buyer.ID, &entity.Dispute{
		DisputeType: entity.DisputeTypePayment,
		Title:       "Double charge",
	})
	require.NoError(t, err)

	_, err = f.dispute.AddMessage(ctx, f.buyer.ID, d.ID, "I was charged twice")
	require.NoError(t, err)

	_, err = f.dispute.AddMessage(ctx, f.seller.ID, d.ID, "butting in")
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.dispute.Get(ctx, f.seller.ID, d.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)

	got, err := f.dispute.Get(ctx, f.buyer.ID, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "I was charged twice", got.Messages[0].Message)
}

func TestDisputeResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.dispute.Create(ctx, f.buyer.ID, &entity.Dispute{
		DisputeType: entity.DisputeTypeProduct,
		Title:       "Wrong item",
	})
	require.NoError(t, err)

	// Only the assignee resolves.
	_, err = f.dispute.Resolve(ctx, f.buyer.ID, d.ID, entity.DisputeStatusResolved, "refunded")
	require.ErrorIs(t, err, ErrPermissionDenied)

	d.AssignedTo = &f.seller.ID
	require.NoError(t, f.store.Disputes().Update(ctx, d))

	resolved, err := f.dispute.Resolve(ctx, f.seller.ID, d.ID, entity.DisputeStatusResolved, "refunded")
	require.NoError(t, err)
	assert.Equal(t, entity.DisputeStatusResolved, resolved.Status)
	assert.Equal(t, "refunded", resolved.Resolution)

	// Closed disputes accept no further messages.
	_, err = f.dispute.AddMessage(ctx, f.buyer.ID, d.ID, "hello?")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDisputeListScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.dispute.Create(ctx, f.buyer.ID, &entity.Dispute{
		DisputeType: entity.DisputeTypeOrder,
		Title:       "Mine",
	})
	require.NoError(t, err)

	_, err = f.dispute.Create(ctx, f.seller.ID, &entity.Dispute{
		DisputeType: entity.DisputeTypeOrder,
		Title:       "Theirs",
	})
	require.NoError(t, err)

	listed, err := f.dispute.ListForUser(ctx, f.buyer.ID, repository.DisputeFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID, listed[0].ID)
}
