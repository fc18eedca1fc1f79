package service

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	// ErrEmptyCart is returned when checkout is attempted with no cart items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is returned when an outgoing movement exceeds the
	// inventory's current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInsufficientBalance is returned when a withdrawal or payment exceeds
	// the user's token balance.
	ErrInsufficientBalance = errors.New("insufficient token balance")
	// ErrInvalidStatus is returned for a disallowed order status transition.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrIdempotentReplay is returned when a checkout reuses an idempotency key.
	ErrIdempotentReplay = errors.New("idempotent key already used")
	// ErrInventoryUnavailable is returned when adding an unavailable inventory
	// to a cart.
	ErrInventoryUnavailable = errors.New("inventory not available")

	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
)
