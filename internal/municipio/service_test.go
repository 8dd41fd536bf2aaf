package municipio

import (
	"context"
	"errors"
	"testing"
)

type stubStore struct {
	infos      map[int]*Info
	liderancas map[string]*Lideranca
	createErr  error
}

func newStubStore() *stubStore {
	return &stubStore{
		infos:      map[int]*Info{},
		liderancas: map[string]*Lideranca{},
	}
}

func (s *stubStore) CreateInfo(ctx context.Context, info *Info) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.infos[info.MunicipioID]; ok {
		return ErrDuplicate
	}
	s.infos[info.MunicipioID] = info
	return nil
}

func (s *stubStore) GetInfo(ctx context.Context, municipioID int) (*Info, error) {
	info, ok := s.infos[municipioID]
	if !ok {
		return nil, ErrNotFound
	}
	return info, nil
}

func (s *stubStore) UpdateInfo(ctx context.Context, municipioID int, input InfoUpdate) (*Info, error) {
	info, ok := s.infos[municipioID]
	if !ok {
		return nil, ErrNotFound
	}
	if input.PrefeitoNome != nil {
		info.PrefeitoNome = input.PrefeitoNome
	}
	return info, nil
}

func (s *stubStore) ListLiderancas(ctx context.Context, municipioID int) ([]Lideranca, error) {
	out := make([]Lideranca, 0)
	for _, l := range s.liderancas {
		if l.MunicipioID == municipioID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubStore) CreateLideranca(ctx context.Context, l *Lideranca) error {
	s.liderancas[l.ID] = l
	return nil
}

func (s *stubStore) UpdateLideranca(ctx context.Context, id string, input LiderancaUpdate) (*Lideranca, error) {
	l, ok := s.liderancas[id]
	if !ok {
		return nil, ErrNotFound
	}
	if input.Nome != nil {
		l.Nome = *input.Nome
	}
	return l, nil
}

func (s *stubStore) DeleteLideranca(ctx context.Context, id string) error {
	if _, ok := s.liderancas[id]; !ok {
		return ErrNotFound
	}
	delete(s.liderancas, id)
	return nil
}

func TestGetInfoAusenteNaoEhErro(t *testing.T) {
	svc := NewService(newStubStore())

	info, err := svc.GetInfo(context.Background(), 4106902)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if info != nil {
		t.Errorf("ausente deveria vir nil, got %+v", info)
	}
}

func TestCreateInfoDuplicado(t *testing.T) {
	svc := NewService(newStubStore())
	ctx := context.Background()

	nome := "Fulano"
	input := InfoCreate{MunicipioID: 4113700, PrefeitoNome: &nome}

	if _, err := svc.CreateInfo(ctx, input); err != nil {
		t.Fatalf("primeiro create: %v", err)
	}
	if _, err := svc.CreateInfo(ctx, input); !errors.Is(err, ErrDuplicate) {
		t.Errorf("segundo create deveria dar ErrDuplicate, got %v", err)
	}
}

func TestUpdateInfoExigeRegistro(t *testing.T) {
	svc := NewService(newStubStore())

	nome := "Beltrano"
	_, err := svc.UpdateInfo(context.Background(), 4115200, InfoUpdate{PrefeitoNome: &nome})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update sem registro deveria dar ErrNotFound, got %v", err)
	}
}

func TestCreateLiderancaObrigatorios(t *testing.T) {
	svc := NewService(newStubStore())
	ctx := context.Background()

	cases := []struct {
		input LiderancaCreate
		field string
	}{
		{LiderancaCreate{MunicipioID: 4106902, Cargo: "Vereador"}, "nome"},
		{LiderancaCreate{MunicipioID: 4106902, Nome: "  ", Cargo: "Vereador"}, "nome"},
		{LiderancaCreate{MunicipioID: 4106902, Nome: "Maria"}, "cargo"},
	}
	for _, tc := range cases {
		_, err := svc.CreateLideranca(ctx, tc.input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != tc.field {
			t.Errorf("input %+v: esperava ValidationError em %q, got %v", tc.input, tc.field, err)
		}
	}

	l, err := svc.CreateLideranca(ctx, LiderancaCreate{MunicipioID: 4106902, Nome: "Maria", Cargo: "Vereadora"})
	if err != nil {
		t.Fatalf("create válido: %v", err)
	}
	if l.ID == "" || l.CreatedAt.IsZero() {
		t.Errorf("create deveria preencher id e carimbos: %+v", l)
	}
}

func TestDeleteLiderancaInexistente(t *testing.T) {
	svc := NewService(newStubStore())

	if err := svc.DeleteLideranca(context.Background(), "nao-existe"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete inexistente deveria dar ErrNotFound, got %v", err)
	}
}
