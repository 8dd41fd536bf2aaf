package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ValueRange espelha o payload da API de valores do Google Sheets.
type ValueRange struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

// SheetsFeed busca um intervalo de células via API de valores.
type SheetsFeed struct {
	sheetID string
	tab     string
	apiKey  string
	client  *http.Client
}

// NewSheetsFeed cria o feed de estradas rurais.
func NewSheetsFeed(sheetID, tab, apiKey string, timeout time.Duration) *SheetsFeed {
	return &SheetsFeed{
		sheetID: sheetID,
		tab:     tab,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch baixa o intervalo A1:I formatado. As nove colunas vêm do próprio
// intervalo, então não há corte pós-busca.
func (f *SheetsFeed) Fetch(ctx context.Context) (*ValueRange, error) {
	endpoint := fmt.Sprintf(
		"https://sheets.googleapis.com/v4/spreadsheets/%s/values/%s",
		url.PathEscape(f.sheetID),
		url.PathEscape(f.tab+"!A1:I"),
	)

	query := url.Values{}
	query.Set("key", f.apiKey)
	query.Set("valueRenderOption", "FORMATTED_VALUE")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
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

	var payload ValueRange
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("payload inválido: %w", err)
	}
	return &payload, nil
}
