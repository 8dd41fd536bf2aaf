package pedido

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stubV2Provider struct {
	createErr error
	updateErr error
	getErr    error
	rec       *LiderancaV2
}

func (s *stubV2Provider) Create(ctx context.Context, input LiderancaV2Create) (*LiderancaV2, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.rec, nil
}

func (s *stubV2Provider) List(ctx context.Context, q, municipio, lideranca, status string) ([]LiderancaV2, error) {
	return []LiderancaV2{}, nil
}

func (s *stubV2Provider) Get(ctx context.Context, id string) (*LiderancaV2, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.rec, nil
}

func (s *stubV2Provider) Update(ctx context.Context, id string, input LiderancaV2Update) (*LiderancaV2, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.rec, nil
}

func (s *stubV2Provider) Delete(ctx context.Context, id string) error { return nil }

func newTestRouter(v2 LiderancaV2Provider) http.Handler {
	h := NewHandler(nil, v2, nil, func(ctx context.Context) string { return "user-1" })
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandlerValidacaoVira422(t *testing.T) {
	stub := &stubV2Provider{createErr: &FieldError{Field: "status", Value: "x", Expected: "enum"}}
	router := newTestRouter(stub)

	rec := doRequest(t, router, http.MethodPost, "/liderancas/", map[string]any{"municipio_id": "1"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, esperava 422", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != "VALIDATION" || envelope.Error.Details.Field != "status" {
		t.Errorf("envelope inesperado: %s", rec.Body.String())
	}
}

func TestHandlerNotModifiedVira304(t *testing.T) {
	stub := &stubV2Provider{updateErr: ErrNotModified}
	router := newTestRouter(stub)

	rec := doRequest(t, router, http.MethodPatch, "/liderancas/abc", map[string]any{"titulo": "x"})
	if rec.Code != http.StatusNotModified {
		t.Fatalf("status = %d, esperava 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 não deveria ter corpo, got %q", rec.Body.String())
	}
}

func TestHandlerNoChangeVira400(t *testing.T) {
	stub := &stubV2Provider{updateErr: ErrNoChange}
	router := newTestRouter(stub)

	rec := doRequest(t, router, http.MethodPatch, "/liderancas/abc", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperava 400", rec.Code)
	}
}

func TestHandlerNotFoundVira404(t *testing.T) {
	stub := &stubV2Provider{getErr: ErrNotFound}
	router := newTestRouter(stub)

	rec := doRequest(t, router, http.MethodGet, "/liderancas/abc", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperava 404", rec.Code)
	}
}

func TestHandlerCatalogo(t *testing.T) {
	router := newTestRouter(&stubV2Provider{})

	rec := doRequest(t, router, http.MethodGet, "/pedidos-maquinarios/catalogo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperava 200", rec.Code)
	}

	var envelope struct {
		Data []EquipamentoCatalogo `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(envelope.Data) != 10 {
		t.Errorf("catálogo com %d equipamentos, esperava 10", len(envelope.Data))
	}
}
