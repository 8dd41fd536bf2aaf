package pedido

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica id inexistente na coleção.
	ErrNotFound = errors.New("pedido não encontrado")
	// ErrNotModified indica update cujo conteúdo novo é igual ao atual.
	ErrNotModified = errors.New("nenhuma alteração realizada")
	// ErrNoChange indica payload de update sem nenhum campo aplicável.
	ErrNoChange = errors.New("nenhum campo para atualizar")
	// ErrPersistence indica escrita não confirmada pelo banco.
	ErrPersistence = errors.New("falha ao salvar o pedido")
)

// FieldError descreve uma falha de validação de campo, com valor recebido
// e o esperado, suficiente para a borda montar mensagem precisa.
type FieldError struct {
	Field    string
	Value    string
	Expected string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: recebido %q, esperado %s", e.Field, e.Value, e.Expected)
}

// Status permitidos para pedidos (além de null).
const (
	StatusEmAndamento           = "em_andamento"
	StatusAguardandoAtendimento = "aguardando_atendimento"
	StatusArquivado             = "arquivado"
	StatusAtendido              = "atendido"
)

var validStatuses = map[string]struct{}{
	StatusEmAndamento:           {},
	StatusAguardandoAtendimento: {},
	StatusArquivado:             {},
	StatusAtendido:              {},
}

// Coleções persistidas.
const (
	ColLiderancasV1 = "pedidos_liderancas"
	ColLiderancasV2 = "pedidos_liderancas_v2"
	ColMaquinarios  = "pedidos_maquinarios_v2"
)

// LiderancaV1 é o esquema legado de pedido de liderança.
type LiderancaV1 struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	MunicipioID     int    `json:"municipio_id"`
	MunicipioNome   string `json:"municipio_nome"`
	PedidoTitulo    string `json:"pedido_titulo"`
	Protocolo       string `json:"protocolo"`
	NomeLideranca   string `json:"nome_lideranca"`
	NumeroLideranca string `json:"numero_lideranca"`
	Descricao       string `json:"descricao"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// LiderancaV1Create é o payload de criação no esquema legado.
type LiderancaV1Create struct {
	MunicipioID     int    `json:"municipio_id"`
	MunicipioNome   string `json:"municipio_nome"`
	PedidoTitulo    string `json:"pedido_titulo"`
	Protocolo       string `json:"protocolo"`
	NomeLideranca   string `json:"nome_lideranca"`
	NumeroLideranca string `json:"numero_lideranca"`
	Descricao       string `json:"descricao"`
}

// LiderancaV1Update é o payload parcial de update legado.
type LiderancaV1Update struct {
	MunicipioID     *int    `json:"municipio_id"`
	MunicipioNome   *string `json:"municipio_nome"`
	PedidoTitulo    *string `json:"pedido_titulo"`
	Protocolo       *string `json:"protocolo"`
	NomeLideranca   *string `json:"nome_lideranca"`
	NumeroLideranca *string `json:"numero_lideranca"`
	Descricao       *string `json:"descricao"`
}

// LiderancaV2 é o esquema vigente de pedido de liderança.
type LiderancaV2 struct {
	ID                string  `json:"id"`
	MunicipioID       string  `json:"municipio_id"`
	MunicipioNome     string  `json:"municipio_nome"`
	LiderancaNome     string  `json:"lideranca_nome"`
	Titulo            string  `json:"titulo"`
	Protocolo         string  `json:"protocolo"`
	LiderancaTelefone string  `json:"lideranca_telefone"`
	Descricao         string  `json:"descricao"`
	Status            *string `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// LiderancaV2Create é o payload de criação V2.
type LiderancaV2Create struct {
	MunicipioID       string  `json:"municipio_id"`
	MunicipioNome     string  `json:"municipio_nome"`
	LiderancaNome     string  `json:"lideranca_nome"`
	Titulo            string  `json:"titulo"`
	Protocolo         string  `json:"protocolo"`
	LiderancaTelefone string  `json:"lideranca_telefone"`
	Descricao         string  `json:"descricao"`
	Status            *string `json:"status"`
}

// LiderancaV2Update é o payload parcial de update V2.
type LiderancaV2Update struct {
	MunicipioID       *string `json:"municipio_id"`
	MunicipioNome     *string `json:"municipio_nome"`
	LiderancaNome     *string `json:"lideranca_nome"`
	Titulo            *string `json:"titulo"`
	Protocolo         *string `json:"protocolo"`
	LiderancaTelefone *string `json:"lideranca_telefone"`
	Descricao         *string `json:"descricao"`
	Status            *string `json:"status"`
}

// ItemMaquinario é uma linha de pedido de maquinário.
type ItemMaquinario struct {
	Equipamento   string  `json:"equipamento"`
	PrecoUnitario float64 `json:"preco_unitario"`
	Quantidade    int     `json:"quantidade"`
	Observacao    string  `json:"observacao"`
	Subtotal      float64 `json:"subtotal"`
}

// MaquinarioV2 é o pedido de maquinário vigente.
type MaquinarioV2 struct {
	ID            string           `json:"id"`
	MunicipioID   string           `json:"municipio_id"`
	MunicipioNome string           `json:"municipio_nome"`
	LiderancaNome string           `json:"lideranca_nome"`
	Itens         []ItemMaquinario `json:"itens"`
	ValorTotal    float64          `json:"valor_total"`
	Status        *string          `json:"status"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

// MaquinarioV2Create é o payload de criação de maquinário.
type MaquinarioV2Create struct {
	MunicipioID   any              `json:"municipio_id"` // coerção: número ou texto viram texto
	MunicipioNome string           `json:"municipio_nome"`
	LiderancaNome string           `json:"lideranca_nome"`
	Itens         []ItemMaquinario `json:"itens"`
	ValorTotal    float64          `json:"valor_total"`
	Status        *string          `json:"status"`
}

// MaquinarioV2Update é o payload parcial de update de maquinário.
type MaquinarioV2Update struct {
	MunicipioID   *string          `json:"municipio_id"`
	MunicipioNome *string          `json:"municipio_nome"`
	LiderancaNome *string          `json:"lideranca_nome"`
	Itens         []ItemMaquinario `json:"itens"`
	ValorTotal    *float64         `json:"valor_total"`
	Status        *string          `json:"status"`
}

// ListFilter parametriza a listagem. Campos vazios não filtram.
type ListFilter struct {
	MunicipioID string   // igualdade exata (apenas liderança V1)
	Municipio   string   // substring caixa-insensível em municipio_nome
	Lideranca   string   // substring caixa-insensível em lideranca_nome
	Status      string   // igualdade exata
	Q           string   // busca livre: OR de substrings nos campos abaixo
	QFields     []string // campos de texto do documento cobertos por Q
	QItems      bool     // Q também cobre itens[].equipamento
}
