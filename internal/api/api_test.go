package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/repository"
	"marketplace-backend/internal/service"
)

func authedContext(t *testing.T, e *echo.Echo, method, target, body string, userID int) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": float64(userID)}))
	return c, rec
}

func TestCurrentUserID(t *testing.T) {
	e := echo.New()

	c, _ := authedContext(t, e, http.MethodGet, "/", "", 7)
	id, err := currentUserID(c)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	// Missing token is a 401.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	bare := e.NewContext(req, httptest.NewRecorder())
	_, err = currentUserID(bare)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestWriteErrorMapping(t *testing.T) {
	e := echo.New()

	cases := []struct {
		err  error
		code int
	}{
		{service.ErrInvalidInput, http.StatusBadRequest},
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrPermissionDenied, http.StatusForbidden},
		{service.ErrEmptyCart, http.StatusConflict},
		{service.ErrInsufficientStock, http.StatusConflict},
		{service.ErrInsufficientBalance, http.StatusConflict},
		{service.ErrInvalidStatus, http.StatusConflict},
		{service.ErrIdempotentReplay, http.StatusConflict},
		{repository.ErrInventoryInUse, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, writeError(c, tc.err))
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}

func TestCheckoutEndpoint(t *testing.T) {
	e := echo.New()
	store := repository.NewMemoryStore()
	inventorySvc := service.NewInventoryService(store.Inventories(), store.RetailPoints(), store.Users(), store, nil, nil)
	orderSvc := service.NewOrderService(store.Orders(), store.Carts(), store.Users(), inventorySvc, store, nil, nil)
	h := NewOrderHandler(orderSvc)

	c, rec := authedContext(t, e, http.MethodPost, "/orders/checkout", `{}`, 1)
	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusConflict, rec.Code, "empty cart must map to 409")
}
