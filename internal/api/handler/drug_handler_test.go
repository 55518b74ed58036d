package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

func TestDrugHandler_Available(t *testing.T) {
	e := newTestEcho()
	stub := &stubService{
		availableFn: func(ctx context.Context) []ports.DrugProjection {
			return []ports.DrugProjection{
				{ID: 1, Name: "aspirin", Description: "painkiller", InStock: 12},
			}
		},
	}
	handler := NewDrugHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/drugs/available", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Available(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["name"] != "aspirin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	// Projections always expose the order-building fields at their zero values.
	if resp[0]["selected"] != false || resp[0]["to_order"] != float64(0) {
		t.Fatalf("projection fields must start zeroed: %+v", resp[0])
	}
}

func TestDrugHandler_Add(t *testing.T) {
	e := newTestEcho()
	var added *domain.Drug
	stub := &stubService{
		addDrugFn: func(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
			added = drug
			drug.ID = 2
			return nil, nil
		},
	}
	handler := NewDrugHandler(stub)

	body := strings.NewReader(`{"name":"ibuprofen","description":"nsaid","in_stock":30}`)
	req := httptest.NewRequest(http.MethodPost, "/drugs", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if added == nil || added.Name != "ibuprofen" || added.InStock != 30 {
		t.Fatalf("unexpected drug passed to service: %+v", added)
	}
}

func TestDrugHandler_Add_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubService{
		addDrugFn: func(ctx context.Context, drug *domain.Drug) (*domain.Drug, error) {
			return domain.NewDrugBuilder().ID(2).Name("ibuprofen").Build(), nil
		},
	}
	handler := NewDrugHandler(stub)

	body := strings.NewReader(`{"name":"ibuprofen","description":"nsaid","in_stock":30}`)
	req := httptest.NewRequest(http.MethodPost, "/drugs", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestDrugHandler_Remove_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubService{
		removeDrugFn: func(ctx context.Context, drugID int64) bool {
			return false
		},
	}
	handler := NewDrugHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/drugs/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDrugHandler_Update(t *testing.T) {
	e := newTestEcho()
	var updated *domain.Drug
	stub := &stubService{
		updateDrugFn: func(ctx context.Context, drug *domain.Drug) bool {
			updated = drug
			return true
		},
	}
	handler := NewDrugHandler(stub)

	body := strings.NewReader(`{"name":"aspirin","description":"painkiller","in_stock":8}`)
	req := httptest.NewRequest(http.MethodPut, "/drugs/1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if updated == nil || updated.ID != 1 || updated.InStock != 8 {
		t.Fatalf("unexpected drug passed to service: %+v", updated)
	}
}
