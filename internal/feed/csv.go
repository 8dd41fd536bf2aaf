package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mandatopr/gabinete/internal/util"
)

// Row é uma linha da planilha com os campos derivados da normalização.
type Row = map[string]any

// CSVFeed busca a planilha de pedidos publicada como CSV.
type CSVFeed struct {
	url    string
	client *http.Client
}

// NewCSVFeed cria o feed com timeout de busca fixo.
func NewCSVFeed(url string, timeout time.Duration) *CSVFeed {
	return &CSVFeed{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch baixa e normaliza a planilha inteira.
func (f *CSVFeed) Fetch(ctx context.Context) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status inesperado %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv inválido: %w", err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{}
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, normalizeRow(row))
	}

	log.Info().Int("rows", len(rows)).Msg("planilha de pedidos carregada")
	return rows, nil
}

// normalizeRow deriva valores numéricos, data ISO e cópia sem acentos do
// município para filtragem insensível.
func normalizeRow(row Row) Row {
	row["valor_solicitado_num"] = ParseMoneyBR(rowString(row, "Valor solicitado"))
	row["valor_liberado_num"] = ParseMoneyBR(rowString(row, "Valor liberado"))
	row["valor_contrapartida_num"] = ParseMoneyBR(rowString(row, "Valor de contrapartida"))

	if iso, ok := ParseDateBR(rowString(row, "Data de cadastro")); ok {
		row["data_cadastro_iso"] = iso
	} else {
		row["data_cadastro_iso"] = nil
	}

	row["municipio_normalized"] = util.Fold(rowString(row, "Município"))
	return row
}

// ByMunicipio filtra as linhas por igualdade exata do município, sem
// distinguir caixa nem acentos. O filtro roda sempre sobre o cache, nunca
// na origem.
func ByMunicipio(rows []Row, municipio string) []Row {
	needle := util.Fold(municipio)
	out := make([]Row, 0)
	for _, row := range rows {
		if norm, _ := row["municipio_normalized"].(string); norm == needle {
			out = append(out, row)
		}
	}
	return out
}

// ParseMoneyBR converte moeda em formato brasileiro ("R$ 1.234.567,89")
// para float; falha de parse vira zero.
func ParseMoneyBR(value string) float64 {
	if value == "" {
		return 0
	}

	cleaned := strings.ReplaceAll(value, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Warn().Str("valor", value).Msg("moeda não reconhecida")
		return 0
	}
	return parsed
}

// ParseDateBR converte dd/mm/yyyy para yyyy-mm-dd.
func ParseDateBR(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}

	parsed, err := time.Parse("02/01/2006", trimmed)
	if err != nil {
		log.Warn().Str("valor", value).Msg("data não reconhecida")
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

func rowString(row Row, key string) string {
	s, _ := row[key].(string)
	return s
}
