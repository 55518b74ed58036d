package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("username", "hana")
	c.Set("role", "hospital_staff")
	c.Set("user_id", int64(42))
	return c
}

func TestOrderHandler_Place(t *testing.T) {
	e := newTestEcho()
	var placed *domain.Order
	stub := &stubService{
		placeOrderFn: func(ctx context.Context, order *domain.Order) bool {
			placed = order
			order.ID = 11
			return true
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"drugs":{"1":2,"3":5}}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if placed == nil {
		t.Fatalf("service was not called")
	}
	if placed.OrderedBy != 42 {
		t.Fatalf("ordering user must come from the token, got %d", placed.OrderedBy)
	}
	if placed.Delivered {
		t.Fatalf("new orders must start undelivered")
	}
	if placed.Drugs[1] != 2 || placed.Drugs[3] != 5 {
		t.Fatalf("unexpected drugs mapping: %v", placed.Drugs)
	}
	if placed.DeliveredAt != nil {
		t.Fatalf("delivery ETA defaulting belongs to the service")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(11) {
		t.Fatalf("expected generated id in response, got %v", resp["id"])
	}
}

func TestOrderHandler_Place_ExplicitETA(t *testing.T) {
	e := newTestEcho()
	var placed *domain.Order
	stub := &stubService{
		placeOrderFn: func(ctx context.Context, order *domain.Order) bool {
			placed = order
			return true
		},
	}
	handler := NewOrderHandler(stub)

	body := strings.NewReader(`{"drugs":{"1":1},"delivered_at":"2026-09-01T12:00:00Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	if placed.DeliveredAt == nil || !placed.DeliveredAt.Equal(want) {
		t.Fatalf("explicit ETA must pass through, got %v", placed.DeliveredAt)
	}
}

func TestOrderHandler_Place_Rejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubService{
		placeOrderFn: func(ctx context.Context, order *domain.Order) bool {
			return false
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"drugs":{"1":1}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestOrderHandler_Place_EmptyDrugs(t *testing.T) {
	e := newTestEcho()
	stub := &stubService{
		placeOrderFn: func(ctx context.Context, order *domain.Order) bool {
			t.Fatalf("should not be called")
			return false
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"drugs":{}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Place(c); err == nil {
		t.Fatalf("expected a validation failure for an empty order")
	}
}

func TestOrderHandler_List(t *testing.T) {
	e := newTestEcho()
	eta := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	stub := &stubService{
		ordersFn: func(ctx context.Context) []ports.OrderProjection {
			return []ports.OrderProjection{{
				ID:          1,
				OrderedBy:   "Hana Abe",
				Delivered:   false,
				OrderedAt:   eta.Add(-24 * time.Hour),
				DeliveredAt: &eta,
			}}
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["ordered_by"] != "Hana Abe" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestOrderHandler_Complete(t *testing.T) {
	e := newTestEcho()
	var completed int64
	stub := &stubService{
		completeOrderFn: func(ctx context.Context, orderID int64) {
			completed = orderID
		},
	}
	handler := NewOrderHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/orders/5/complete", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Complete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || completed != 5 {
		t.Fatalf("expected completion of order 5, got code=%d id=%d", rec.Code, completed)
	}
}

func TestOrderHandler_Cancel_BadID(t *testing.T) {
	e := newTestEcho()
	handler := NewOrderHandler(&stubService{})

	req := httptest.NewRequest(http.MethodDelete, "/orders/abc", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Cancel(c); err == nil {
		t.Fatalf("expected an error for a non-numeric id")
	}
}
