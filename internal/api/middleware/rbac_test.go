package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RBAC(allowed...)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec
}

func TestRBAC_AllowedRole(t *testing.T) {
	rec := runRBAC(t, "pharmacy_staff", domain.RoleAdmin, domain.RolePharmacyStaff)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbiddenRole(t *testing.T) {
	rec := runRBAC(t, "hospital_staff", domain.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	rec := runRBAC(t, "", domain.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
