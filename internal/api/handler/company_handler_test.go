package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

func TestCompanyHandler_List(t *testing.T) {
	stub := &stubCompanyService{page: &ports.CompanyPage{
		Data:  []domain.Company{{ID: 1, Name: "Acme"}},
		Count: 14,
	}}
	h := NewCompanyHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/companies?search=ac&industry=Fintech&size=all&offset=6&limit=6", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	f := stub.filter
	if f.Search != "ac" || f.Industry != "Fintech" || f.Size != "all" || f.Offset != 6 || f.Limit != 6 {
		t.Fatalf("unexpected filter %+v", f)
	}

	var resp struct {
		Data  []map[string]any `json:"data"`
		Count int64            `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 14 || len(resp.Data) != 1 || resp.Data[0]["name"] != "Acme" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

func TestCompanyHandler_List_BadPaging(t *testing.T) {
	h := NewCompanyHandler(&stubCompanyService{})

	c, _ := newTestContext(http.MethodGet, "/companies?offset=abc", nil)
	err := h.List(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCompanyHandler_List_Unavailable(t *testing.T) {
	h := NewCompanyHandler(&stubCompanyService{err: domain.ErrUnavailable})

	c, _ := newTestContext(http.MethodGet, "/companies", nil)
	if err := h.List(c); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
