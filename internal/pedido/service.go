package pedido

import (
	"context"
	"strconv"
	"strings"

	"github.com/mandatopr/gabinete/internal/util"
)

// liderancaV2QFields são os campos cobertos pela busca livre no esquema V2.
var liderancaV2QFields = []string{"protocolo", "titulo", "lideranca_nome", "municipio_nome", "descricao"}

// maquinarioQFields idem para maquinário (itens cobertos via QItems).
var maquinarioQFields = []string{"municipio_nome", "lideranca_nome"}

// LiderancaV1Service implementa o esquema legado de pedidos de liderança.
type LiderancaV1Service struct {
	store DocStore
}

// NewLiderancaV1Service cria o serviço legado.
func NewLiderancaV1Service(store DocStore) *LiderancaV1Service {
	return &LiderancaV1Service{store: store}
}

// Create valida e grava um pedido legado. Diferente do caminho vigente, a
// escrita é conferida: zero linhas confirmadas vira ErrPersistence.
func (s *LiderancaV1Service) Create(ctx context.Context, userID string, input LiderancaV1Create) (*LiderancaV1, error) {
	if err := requireField(input.MunicipioNome, "municipio_nome"); err != nil {
		return nil, err
	}
	if err := requireField(input.PedidoTitulo, "pedido_titulo"); err != nil {
		return nil, err
	}
	if err := requireField(input.NomeLideranca, "nome_lideranca"); err != nil {
		return nil, err
	}

	protocolo, err := ValidateProtocoloStrict(input.Protocolo)
	if err != nil {
		return nil, err
	}
	numero, err := ValidateNumeroLideranca(input.NumeroLideranca)
	if err != nil {
		return nil, err
	}

	now := util.NowISO()
	doc := map[string]any{
		"id":               util.NewID(),
		"user_id":          userID,
		"municipio_id":     input.MunicipioID,
		"municipio_nome":   input.MunicipioNome,
		"pedido_titulo":    input.PedidoTitulo,
		"protocolo":        protocolo,
		"nome_lideranca":   input.NomeLideranca,
		"numero_lideranca": numero,
		"descricao":        input.Descricao,
		"created_at":       now,
		"updated_at":       now,
	}

	rows, err := s.store.Insert(ctx, ColLiderancasV1, doc["id"].(string), doc)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPersistence
	}

	rec := NormalizeLiderancaV1(doc)
	return &rec, nil
}

// List devolve pedidos legados, filtro opcional por municipio_id exato.
func (s *LiderancaV1Service) List(ctx context.Context, municipioID string) ([]LiderancaV1, error) {
	docs, err := s.store.List(ctx, ColLiderancasV1, ListFilter{MunicipioID: municipioID})
	if err != nil {
		return nil, err
	}

	out := make([]LiderancaV1, 0, len(docs))
	for _, doc := range docs {
		out = append(out, NormalizeLiderancaV1(doc))
	}
	return out, nil
}

// Get busca pedido legado por id.
func (s *LiderancaV1Service) Get(ctx context.Context, id string) (*LiderancaV1, error) {
	doc, err := s.store.FindByID(ctx, ColLiderancasV1, id)
	if err != nil {
		return nil, err
	}
	rec := NormalizeLiderancaV1(doc)
	return &rec, nil
}

// Update aplica campos presentes. O caminho legado sempre prossegue: um
// payload vazio ainda renova updated_at, sem sinalizar ausência de mudança.
func (s *LiderancaV1Service) Update(ctx context.Context, id string, input LiderancaV1Update) (*LiderancaV1, error) {
	if _, err := s.store.FindByID(ctx, ColLiderancasV1, id); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.MunicipioID != nil {
		patch["municipio_id"] = *input.MunicipioID
	}
	if input.MunicipioNome != nil {
		patch["municipio_nome"] = *input.MunicipioNome
	}
	if input.PedidoTitulo != nil {
		patch["pedido_titulo"] = *input.PedidoTitulo
	}
	if input.Protocolo != nil {
		protocolo, err := ValidateProtocoloStrict(*input.Protocolo)
		if err != nil {
			return nil, err
		}
		patch["protocolo"] = protocolo
	}
	if input.NomeLideranca != nil {
		patch["nome_lideranca"] = *input.NomeLideranca
	}
	if input.NumeroLideranca != nil {
		numero, err := ValidateNumeroLideranca(*input.NumeroLideranca)
		if err != nil {
			return nil, err
		}
		patch["numero_lideranca"] = numero
	}
	if input.Descricao != nil {
		patch["descricao"] = *input.Descricao
	}

	if err := s.store.UpdateDocAlways(ctx, ColLiderancasV1, id, patch, util.NowISO()); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete remove pedido legado após conferir existência.
func (s *LiderancaV1Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, ColLiderancasV1, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, ColLiderancasV1, id)
}

// LiderancaV2Service implementa o esquema vigente de pedidos de liderança.
type LiderancaV2Service struct {
	store DocStore
}

// NewLiderancaV2Service cria o serviço vigente.
func NewLiderancaV2Service(store DocStore) *LiderancaV2Service {
	return &LiderancaV2Service{store: store}
}

// Create valida e grava um pedido V2. A escrita não é re-conferida.
func (s *LiderancaV2Service) Create(ctx context.Context, input LiderancaV2Create) (*LiderancaV2, error) {
	if err := requireField(input.MunicipioID, "municipio_id"); err != nil {
		return nil, err
	}
	if err := requireField(input.MunicipioNome, "municipio_nome"); err != nil {
		return nil, err
	}
	if err := requireField(input.LiderancaNome, "lideranca_nome"); err != nil {
		return nil, err
	}

	status, err := ValidateStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := util.NowISO()
	doc := map[string]any{
		"id":                 util.NewID(),
		"municipio_id":       input.MunicipioID,
		"municipio_nome":     input.MunicipioNome,
		"lideranca_nome":     input.LiderancaNome,
		"titulo":             strings.TrimSpace(input.Titulo),
		"protocolo":          ValidateProtocoloLenient(input.Protocolo),
		"lideranca_telefone": ValidateTelefoneLenient(input.LiderancaTelefone),
		"descricao":          input.Descricao,
		"status":             statusValue(status),
		"created_at":         now,
		"updated_at":         now,
	}

	if _, err := s.store.Insert(ctx, ColLiderancasV2, doc["id"].(string), doc); err != nil {
		return nil, err
	}

	rec := NormalizeLiderancaV2(doc)
	return &rec, nil
}

// List devolve pedidos V2 com filtros opcionais combináveis.
func (s *LiderancaV2Service) List(ctx context.Context, q, municipio, lideranca, status string) ([]LiderancaV2, error) {
	docs, err := s.store.List(ctx, ColLiderancasV2, ListFilter{
		Municipio: municipio,
		Lideranca: lideranca,
		Status:    status,
		Q:         q,
		QFields:   liderancaV2QFields,
	})
	if err != nil {
		return nil, err
	}

	out := make([]LiderancaV2, 0, len(docs))
	for _, doc := range docs {
		out = append(out, NormalizeLiderancaV2(doc))
	}
	return out, nil
}

// Get busca pedido V2 por id.
func (s *LiderancaV2Service) Get(ctx context.Context, id string) (*LiderancaV2, error) {
	doc, err := s.store.FindByID(ctx, ColLiderancasV2, id)
	if err != nil {
		return nil, err
	}
	rec := NormalizeLiderancaV2(doc)
	return &rec, nil
}

// Update aplica apenas campos presentes; payload sem nada aplicável vira
// ErrNoChange e valores idênticos aos atuais viram ErrNotModified.
func (s *LiderancaV2Service) Update(ctx context.Context, id string, input LiderancaV2Update) (*LiderancaV2, error) {
	if _, err := s.store.FindByID(ctx, ColLiderancasV2, id); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.MunicipioID != nil {
		patch["municipio_id"] = *input.MunicipioID
	}
	if input.MunicipioNome != nil {
		patch["municipio_nome"] = *input.MunicipioNome
	}
	if input.LiderancaNome != nil {
		patch["lideranca_nome"] = *input.LiderancaNome
	}
	if input.Titulo != nil {
		patch["titulo"] = *input.Titulo
	}
	if input.Protocolo != nil {
		protocolo, err := ValidateProtocoloLenientUpdate(*input.Protocolo)
		if err != nil {
			return nil, err
		}
		patch["protocolo"] = protocolo
	}
	if input.LiderancaTelefone != nil {
		telefone, err := ValidateTelefoneLenientUpdate(*input.LiderancaTelefone)
		if err != nil {
			return nil, err
		}
		patch["lideranca_telefone"] = telefone
	}
	if input.Descricao != nil {
		patch["descricao"] = *input.Descricao
	}
	if input.Status != nil {
		status, err := ValidateStatus(input.Status)
		if err != nil {
			return nil, err
		}
		// status vazio normaliza para nil e, como no caminho vigente em
		// produção, é descartado do patch (não limpa o campo)
		if status != nil {
			patch["status"] = *status
		}
	}

	if len(patch) == 0 {
		return nil, ErrNoChange
	}

	if err := s.store.UpdateDoc(ctx, ColLiderancasV2, id, patch, util.NowISO()); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete remove pedido V2; id inexistente vira ErrNotFound.
func (s *LiderancaV2Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, ColLiderancasV2, id)
}

// MaquinarioService implementa pedidos de maquinário.
type MaquinarioService struct {
	store DocStore
}

// NewMaquinarioService cria o serviço de maquinário.
func NewMaquinarioService(store DocStore) *MaquinarioService {
	return &MaquinarioService{store: store}
}

// Create valida itens contra o catálogo, a aritmética de subtotais e o total.
func (s *MaquinarioService) Create(ctx context.Context, input MaquinarioV2Create) (*MaquinarioV2, error) {
	municipioID, err := coerceMunicipioID(input.MunicipioID)
	if err != nil {
		return nil, err
	}
	if err := requireField(input.MunicipioNome, "municipio_nome"); err != nil {
		return nil, err
	}
	if len(input.Itens) == 0 {
		return nil, &FieldError{Field: "itens", Value: "", Expected: "pelo menos 1 item"}
	}

	for _, item := range input.Itens {
		if err := ValidateItem(item); err != nil {
			return nil, err
		}
	}
	if err := ValidateValorTotal(input.ValorTotal, input.Itens); err != nil {
		return nil, err
	}

	status, err := ValidateStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := util.NowISO()
	doc := map[string]any{
		"id":             util.NewID(),
		"municipio_id":   municipioID,
		"municipio_nome": input.MunicipioNome,
		"lideranca_nome": input.LiderancaNome,
		"itens":          input.Itens,
		"valor_total":    input.ValorTotal,
		"status":         statusValue(status),
		"created_at":     now,
		"updated_at":     now,
	}

	if _, err := s.store.Insert(ctx, ColMaquinarios, doc["id"].(string), doc); err != nil {
		return nil, err
	}

	rec := NormalizeMaquinario(doc)
	return &rec, nil
}

// List devolve pedidos de maquinário com filtros opcionais.
func (s *MaquinarioService) List(ctx context.Context, q, municipio, status string) ([]MaquinarioV2, error) {
	docs, err := s.store.List(ctx, ColMaquinarios, ListFilter{
		Municipio: municipio,
		Status:    status,
		Q:         q,
		QFields:   maquinarioQFields,
		QItems:    true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]MaquinarioV2, 0, len(docs))
	for _, doc := range docs {
		out = append(out, NormalizeMaquinario(doc))
	}
	return out, nil
}

// Get busca pedido de maquinário por id.
func (s *MaquinarioService) Get(ctx context.Context, id string) (*MaquinarioV2, error) {
	doc, err := s.store.FindByID(ctx, ColMaquinarios, id)
	if err != nil {
		return nil, err
	}
	rec := NormalizeMaquinario(doc)
	return &rec, nil
}

// Update aplica campos presentes; itens fornecidos são revalidados e, se o
// total vier junto, conferido contra eles.
func (s *MaquinarioService) Update(ctx context.Context, id string, input MaquinarioV2Update) (*MaquinarioV2, error) {
	if _, err := s.store.FindByID(ctx, ColMaquinarios, id); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.MunicipioID != nil {
		patch["municipio_id"] = *input.MunicipioID
	}
	if input.MunicipioNome != nil {
		patch["municipio_nome"] = *input.MunicipioNome
	}
	if input.LiderancaNome != nil {
		patch["lideranca_nome"] = *input.LiderancaNome
	}
	if input.Itens != nil {
		for _, item := range input.Itens {
			if err := ValidateItem(item); err != nil {
				return nil, err
			}
		}
		patch["itens"] = input.Itens
	}
	if input.ValorTotal != nil {
		if input.Itens != nil {
			if err := ValidateValorTotal(*input.ValorTotal, input.Itens); err != nil {
				return nil, err
			}
		}
		patch["valor_total"] = *input.ValorTotal
	}
	if input.Status != nil {
		status, err := ValidateStatus(input.Status)
		if err != nil {
			return nil, err
		}
		if status != nil {
			patch["status"] = *status
		}
	}

	if len(patch) == 0 {
		return nil, ErrNoChange
	}

	if err := s.store.UpdateDoc(ctx, ColMaquinarios, id, patch, util.NowISO()); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete remove pedido de maquinário; id inexistente vira ErrNotFound.
func (s *MaquinarioService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, ColMaquinarios, id)
}

func requireField(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Value: value, Expected: "valor não vazio"}
	}
	return nil
}

// coerceMunicipioID aceita número ou texto e devolve sempre texto.
func coerceMunicipioID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if strings.TrimSpace(id) == "" {
			return "", &FieldError{Field: "municipio_id", Value: "", Expected: "valor não vazio"}
		}
		return id, nil
	case float64:
		return strconv.FormatInt(int64(id), 10), nil
	case int:
		return strconv.Itoa(id), nil
	case nil:
		return "", &FieldError{Field: "municipio_id", Value: "", Expected: "valor não vazio"}
	default:
		return "", &FieldError{Field: "municipio_id", Value: "", Expected: "número ou texto"}
	}
}

// statusValue converte *string em valor jsonb (nil vira null explícito).
func statusValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
