package pedido

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mandatopr/gabinete/internal/util"
)

// Duas políticas de validação convivem para protocolo e telefone: a estrita
// do esquema legado e a tolerante do esquema vigente. No caminho vigente,
// criação aceita qualquer contagem de dígitos, mas update rejeita contagens
// erradas. A assimetria é herdada do sistema em produção e é preservada.

var protocoloPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}-\d$`)

const toleranciaCentavos = 0.01

// ValidateProtocoloStrict exige o formato 00.000.000-0; vazio vira "".
func ValidateProtocoloStrict(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if !protocoloPattern.MatchString(v) {
		return "", &FieldError{
			Field:    "protocolo",
			Value:    v,
			Expected: "formato 00.000.000-0 (exemplo: 24.298.238-6)",
		}
	}
	return v, nil
}

// ValidateProtocoloLenient aceita qualquer valor não vazio após trim.
// Contagem de dígitos diferente de 9 é tolerada em silêncio na criação.
func ValidateProtocoloLenient(v string) string {
	return strings.TrimSpace(v)
}

// ValidateProtocoloLenientUpdate rejeita, no update, protocolo cujos
// dígitos não somem exatamente 9.
func ValidateProtocoloLenientUpdate(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if digits := util.OnlyDigits(v); digits != "" && len(digits) != 9 {
		return "", &FieldError{
			Field:    "protocolo",
			Value:    v,
			Expected: "9 dígitos (formato: 00.000.000-0)",
		}
	}
	return v, nil
}

// ValidateTelefoneLenient aceita qualquer telefone na criação.
func ValidateTelefoneLenient(v string) string {
	return strings.TrimSpace(v)
}

// ValidateTelefoneLenientUpdate rejeita, no update, telefone com contagem
// de dígitos fora de 10 ou 11.
func ValidateTelefoneLenientUpdate(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if digits := util.OnlyDigits(v); digits != "" && len(digits) != 10 && len(digits) != 11 {
		return "", &FieldError{
			Field:    "lideranca_telefone",
			Value:    v,
			Expected: "10 ou 11 dígitos",
		}
	}
	return v, nil
}

// ValidateNumeroLideranca exige número de contato composto só por dígitos
// (espaços, hífens e parênteses são ignorados na verificação).
func ValidateNumeroLideranca(v string) (string, error) {
	v = strings.TrimSpace(v)
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(v)
	if cleaned == "" || util.OnlyDigits(cleaned) != cleaned {
		return "", &FieldError{
			Field:    "numero_lideranca",
			Value:    v,
			Expected: "apenas números",
		}
	}
	return v, nil
}

// ValidateStatus normaliza vazio para nil e rejeita valores fora do conjunto.
func ValidateStatus(v *string) (*string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if _, ok := validStatuses[s]; !ok {
		return nil, &FieldError{
			Field:    "status",
			Value:    s,
			Expected: "em_andamento, aguardando_atendimento, arquivado, atendido ou vazio",
		}
	}
	return &s, nil
}

// ValidateItem confere um item contra o catálogo e sua aritmética interna.
func ValidateItem(item ItemMaquinario) error {
	preco, ok := CatalogoEquipamentos[item.Equipamento]
	if !ok {
		return &FieldError{
			Field:    "equipamento",
			Value:    item.Equipamento,
			Expected: "um equipamento do catálogo",
		}
	}

	if item.Quantidade < 1 {
		return &FieldError{
			Field:    "quantidade",
			Value:    fmt.Sprintf("%d", item.Quantidade),
			Expected: "quantidade mínima 1",
		}
	}

	if math.Abs(item.PrecoUnitario-preco) > toleranciaCentavos {
		return &FieldError{
			Field:    "preco_unitario",
			Value:    fmt.Sprintf("R$ %.2f", item.PrecoUnitario),
			Expected: fmt.Sprintf("R$ %.2f para %q", preco, item.Equipamento),
		}
	}

	esperado := item.PrecoUnitario * float64(item.Quantidade)
	if math.Abs(item.Subtotal-esperado) > toleranciaCentavos {
		return &FieldError{
			Field:    "subtotal",
			Value:    fmt.Sprintf("R$ %.2f", item.Subtotal),
			Expected: fmt.Sprintf("R$ %.2f", esperado),
		}
	}

	return nil
}

// ValidateValorTotal confere o total contra a soma dos subtotais.
func ValidateValorTotal(total float64, itens []ItemMaquinario) error {
	var soma float64
	for _, item := range itens {
		soma += item.Subtotal
	}
	if math.Abs(total-soma) > toleranciaCentavos {
		return &FieldError{
			Field:    "valor_total",
			Value:    fmt.Sprintf("R$ %.2f", total),
			Expected: fmt.Sprintf("R$ %.2f", soma),
		}
	}
	return nil
}
