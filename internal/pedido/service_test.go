package pedido

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// stubDocStore simula o armazenamento de documentos em memória, inclusive a
// distinção entre update sem efeito e id inexistente.
type stubDocStore struct {
	docs       map[string]map[string]map[string]any
	insertRows int64
	lastFilter ListFilter
}

func newStubDocStore() *stubDocStore {
	return &stubDocStore{
		docs:       map[string]map[string]map[string]any{},
		insertRows: 1,
	}
}

func (s *stubDocStore) collection(name string) map[string]map[string]any {
	if s.docs[name] == nil {
		s.docs[name] = map[string]map[string]any{}
	}
	return s.docs[name]
}

func (s *stubDocStore) Insert(ctx context.Context, collection, id string, doc map[string]any) (int64, error) {
	if s.insertRows > 0 {
		s.collection(collection)[id] = doc
	}
	return s.insertRows, nil
}

func (s *stubDocStore) FindByID(ctx context.Context, collection, id string) (map[string]any, error) {
	doc, ok := s.collection(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *stubDocStore) List(ctx context.Context, collection string, filter ListFilter) ([]map[string]any, error) {
	s.lastFilter = filter
	out := []map[string]any{}
	for _, doc := range s.collection(collection) {
		out = append(out, doc)
	}
	return out, nil
}

func (s *stubDocStore) UpdateDoc(ctx context.Context, collection, id string, patch map[string]any, updatedAt string) error {
	doc, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}

	changed := false
	for k, v := range patch {
		if !reflect.DeepEqual(doc[k], v) {
			changed = true
		}
	}
	if !changed {
		return ErrNotModified
	}

	for k, v := range patch {
		doc[k] = v
	}
	doc["updated_at"] = updatedAt
	return nil
}

func (s *stubDocStore) UpdateDocAlways(ctx context.Context, collection, id string, patch map[string]any, updatedAt string) error {
	doc, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		doc[k] = v
	}
	doc["updated_at"] = updatedAt
	return nil
}

func (s *stubDocStore) Delete(ctx context.Context, collection, id string) error {
	col := s.collection(collection)
	if _, ok := col[id]; !ok {
		return ErrNotFound
	}
	delete(col, id)
	return nil
}

func TestLiderancaV2CreateGetRoundTrip(t *testing.T) {
	store := newStubDocStore()
	svc := NewLiderancaV2Service(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, LiderancaV2Create{
		MunicipioID:   "1",
		MunicipioNome: "Curitiba",
		LiderancaNome: "João",
		Protocolo:     "",
		Status:        nil,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create deveria gerar id")
	}
	if created.Status != nil {
		t.Fatalf("status deveria ser nil, got %v", *created.Status)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(created, got) {
		t.Errorf("get difere do create:\ncreate: %+v\nget:    %+v", created, got)
	}
}

func TestLiderancaV2UpdateSemEfeito(t *testing.T) {
	store := newStubDocStore()
	svc := NewLiderancaV2Service(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, LiderancaV2Create{
		MunicipioID:   "1",
		MunicipioNome: "Curitiba",
		LiderancaNome: "João",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updatedAtAntes := created.UpdatedAt

	nome := "João"
	_, err = svc.Update(ctx, created.ID, LiderancaV2Update{LiderancaNome: &nome})
	if !errors.Is(err, ErrNotModified) {
		t.Fatalf("update idêntico deveria dar ErrNotModified, got %v", err)
	}

	depois, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if depois.UpdatedAt != updatedAtAntes {
		t.Errorf("updated_at mudou em update sem efeito: %q -> %q", updatedAtAntes, depois.UpdatedAt)
	}
}

func TestLiderancaV2UpdateVazio(t *testing.T) {
	store := newStubDocStore()
	svc := NewLiderancaV2Service(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, LiderancaV2Create{
		MunicipioID:   "1",
		MunicipioNome: "Curitiba",
		LiderancaNome: "João",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, LiderancaV2Update{}); !errors.Is(err, ErrNoChange) {
		t.Fatalf("payload vazio deveria dar ErrNoChange, got %v", err)
	}

	// status vazio é descartado do patch, então o payload vira vazio também
	vazio := ""
	if _, err := svc.Update(ctx, created.ID, LiderancaV2Update{Status: &vazio}); !errors.Is(err, ErrNoChange) {
		t.Fatalf("status vazio sozinho deveria dar ErrNoChange, got %v", err)
	}
}

func TestLiderancaV2DeleteDepoisGet(t *testing.T) {
	store := newStubDocStore()
	svc := NewLiderancaV2Service(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, LiderancaV2Create{
		MunicipioID:   "1",
		MunicipioNome: "Curitiba",
		LiderancaNome: "João",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get após delete deveria dar ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete repetido deveria dar ErrNotFound, got %v", err)
	}
}

func TestLiderancaV1CreateValidaEConfirmaEscrita(t *testing.T) {
	store := newStubDocStore()
	svc := NewLiderancaV1Service(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", LiderancaV1Create{
		MunicipioID:     1,
		MunicipioNome:   "Curitiba",
		PedidoTitulo:    "Ponte",
		NomeLideranca:   "Maria",
		NumeroLideranca: "(41) 9999-9999",
		Protocolo:       "protocolo-invalido",
	})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "protocolo" {
		t.Fatalf("protocolo fora do padrão deveria falhar, got %v", err)
	}

	created, err := svc.Create(ctx, "user-1", LiderancaV1Create{
		MunicipioID:     1,
		MunicipioNome:   "Curitiba",
		PedidoTitulo:    "Ponte",
		NomeLideranca:   "Maria",
		NumeroLideranca: "(41) 9999-9999",
		Protocolo:       "24.298.238-6",
	})
	if err != nil {
		t.Fatalf("create válido: %v", err)
	}
	if created.UserID != "user-1" {
		t.Errorf("user_id = %q, esperava autor do pedido", created.UserID)
	}

	// escrita não confirmada
	store.insertRows = 0
	_, err = svc.Create(ctx, "user-1", LiderancaV1Create{
		MunicipioID:   1,
		MunicipioNome: "Curitiba",
		PedidoTitulo:  "Ponte",
		NomeLideranca: "Maria",
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("escrita sem ack deveria dar ErrPersistence, got %v", err)
	}
}

func TestLiderancaV1UpdateSempreProssegue(t *testing.T) {
	store := newStubDocStore()
	svc := NewLiderancaV1Service(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", LiderancaV1Create{
		MunicipioID:   1,
		MunicipioNome: "Curitiba",
		PedidoTitulo:  "Ponte",
		NomeLideranca: "Maria",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// payload vazio não é erro no caminho legado: só o timestamp anda
	updated, err := svc.Update(ctx, created.ID, LiderancaV1Update{})
	if err != nil {
		t.Fatalf("update vazio legado: %v", err)
	}
	if updated.UpdatedAt == created.UpdatedAt {
		t.Error("update legado deveria renovar updated_at mesmo sem campos")
	}
}

func TestMaquinarioCreateCatalogoEAritmetica(t *testing.T) {
	store := newStubDocStore()
	svc := NewMaquinarioService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, MaquinarioV2Create{
		MunicipioID:   "1",
		MunicipioNome: "Curitiba",
		Itens: []ItemMaquinario{
			{Equipamento: "Trator de Esteiras", PrecoUnitario: 1.00, Quantidade: 1, Subtotal: 1.00},
		},
		ValorTotal: 1.00,
	})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "preco_unitario" {
		t.Fatalf("preço fora do catálogo deveria falhar, got %v", err)
	}

	// municipio_id numérico (JSON number) é coagido para texto
	created, err := svc.Create(ctx, MaquinarioV2Create{
		MunicipioID:   float64(42),
		MunicipioNome: "Curitiba",
		Itens: []ItemMaquinario{
			{Equipamento: "Bob Cat", PrecoUnitario: 430000.00, Quantidade: 2, Subtotal: 860000.00},
		},
		ValorTotal: 860000.00,
	})
	if err != nil {
		t.Fatalf("create válido: %v", err)
	}
	if created.MunicipioID != "42" {
		t.Errorf("municipio_id = %q, esperava \"42\"", created.MunicipioID)
	}

	_, err = svc.Create(ctx, MaquinarioV2Create{
		MunicipioID:   "1",
		MunicipioNome: "Curitiba",
		Itens:         []ItemMaquinario{},
		ValorTotal:    0,
	})
	if err == nil {
		t.Fatal("pedido sem itens deveria falhar")
	}
}

func TestListCamposDeBusca(t *testing.T) {
	store := newStubDocStore()
	ctx := context.Background()

	v2 := NewLiderancaV2Service(store)
	if _, err := v2.List(ctx, "curitiba", "", "", ""); err != nil {
		t.Fatalf("list v2: %v", err)
	}
	wantV2 := []string{"protocolo", "titulo", "lideranca_nome", "municipio_nome", "descricao"}
	if !reflect.DeepEqual(store.lastFilter.QFields, wantV2) {
		t.Errorf("campos de busca v2 = %v, esperava %v", store.lastFilter.QFields, wantV2)
	}
	if store.lastFilter.QItems {
		t.Error("busca v2 não deveria cobrir itens")
	}

	maq := NewMaquinarioService(store)
	if _, err := maq.List(ctx, "trator", "", ""); err != nil {
		t.Fatalf("list maquinário: %v", err)
	}
	wantMaq := []string{"municipio_nome", "lideranca_nome"}
	if !reflect.DeepEqual(store.lastFilter.QFields, wantMaq) {
		t.Errorf("campos de busca maquinário = %v, esperava %v", store.lastFilter.QFields, wantMaq)
	}
	if !store.lastFilter.QItems {
		t.Error("busca de maquinário deveria cobrir itens")
	}
}
