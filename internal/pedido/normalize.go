package pedido

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mandatopr/gabinete/internal/util"
)

// O histórico das coleções contém documentos gravados por versões antigas do
// esquema: campos ausentes, nulls e datas como timestamp nativo. Os
// normalizadores abaixo são funções totais — nunca falham — e idempotentes:
// normalizar um documento já normalizado devolve o mesmo resultado.

// NormalizeLiderancaV1 completa um documento legado de liderança.
func NormalizeLiderancaV1(doc map[string]any) LiderancaV1 {
	return LiderancaV1{
		ID:              docString(doc, "id"),
		UserID:          docString(doc, "user_id"),
		MunicipioID:     docInt(doc, "municipio_id"),
		MunicipioNome:   docString(doc, "municipio_nome"),
		PedidoTitulo:    docString(doc, "pedido_titulo"),
		Protocolo:       docString(doc, "protocolo"),
		NomeLideranca:   docString(doc, "nome_lideranca"),
		NumeroLideranca: docString(doc, "numero_lideranca"),
		Descricao:       docString(doc, "descricao"),
		CreatedAt:       docTimestamp(doc, "created_at"),
		UpdatedAt:       docTimestamp(doc, "updated_at"),
	}
}

// NormalizeLiderancaV2 completa um documento V2 de liderança.
func NormalizeLiderancaV2(doc map[string]any) LiderancaV2 {
	return LiderancaV2{
		ID:                docString(doc, "id"),
		MunicipioID:       docString(doc, "municipio_id"),
		MunicipioNome:     docString(doc, "municipio_nome"),
		LiderancaNome:     docString(doc, "lideranca_nome"),
		Titulo:            docString(doc, "titulo"),
		Protocolo:         docString(doc, "protocolo"),
		LiderancaTelefone: docString(doc, "lideranca_telefone"),
		Descricao:         docString(doc, "descricao"),
		Status:            docStatus(doc, "status"),
		CreatedAt:         docTimestamp(doc, "created_at"),
		UpdatedAt:         docTimestamp(doc, "updated_at"),
	}
}

// NormalizeMaquinario completa um documento de pedido de maquinário.
func NormalizeMaquinario(doc map[string]any) MaquinarioV2 {
	return MaquinarioV2{
		ID:            docString(doc, "id"),
		MunicipioID:   docString(doc, "municipio_id"),
		MunicipioNome: docString(doc, "municipio_nome"),
		LiderancaNome: docString(doc, "lideranca_nome"),
		Itens:         docItens(doc, "itens"),
		ValorTotal:    docFloat(doc, "valor_total"),
		Status:        docStatus(doc, "status"),
		CreatedAt:     docTimestamp(doc, "created_at"),
		UpdatedAt:     docTimestamp(doc, "updated_at"),
	}
}

// docString coage qualquer valor textual/numérico; ausente ou null vira "".
func docString(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// jsonb devolve números como float64; ids antigos eram int
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// docInt coage para inteiro com fallback zero.
func docInt(doc map[string]any, key string) int {
	switch v := doc[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return 0
	default:
		return 0
	}
}

// docFloat coage para float com fallback zero.
func docFloat(doc map[string]any, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

// docTimestamp aceita três formas: valor nativo de data (vira ISO-8601),
// string ISO-8601 (passa intacta) e ausência (vira agora em UTC).
func docTimestamp(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case string:
		if v != "" {
			return v
		}
	}
	return util.NowISO()
}

// docStatus normaliza "" e ausência para nil.
func docStatus(doc map[string]any, key string) *string {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// docItens reconstrói a lista de itens a partir do jsonb cru.
func docItens(doc map[string]any, key string) []ItemMaquinario {
	switch raw := doc[key].(type) {
	case []ItemMaquinario:
		return raw
	case []any:
		itens := make([]ItemMaquinario, 0, len(raw))
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			itens = append(itens, ItemMaquinario{
				Equipamento:   docString(m, "equipamento"),
				PrecoUnitario: docFloat(m, "preco_unitario"),
				Quantidade:    docInt(m, "quantidade"),
				Observacao:    docString(m, "observacao"),
				Subtotal:      docFloat(m, "subtotal"),
			})
		}
		return itens
	default:
		return []ItemMaquinario{}
	}
}
