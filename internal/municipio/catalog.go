package municipio

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mandatopr/gabinete/internal/util"
)

//go:embed data/municipios_parana.json
var municipiosJSON []byte

// Municipio é uma entrada do catálogo fixo de municípios do Paraná.
type Municipio struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

var (
	catalogOnce sync.Once
	catalogData []Municipio
	catalogErr  error
)

func loadCatalog() ([]Municipio, error) {
	catalogOnce.Do(func() {
		var data []Municipio
		if err := json.Unmarshal(municipiosJSON, &data); err != nil {
			catalogErr = fmt.Errorf("catálogo de municípios: %w", err)
			return
		}
		sort.Slice(data, func(i, j int) bool { return data[i].Nome < data[j].Nome })
		catalogData = data
	})
	return catalogData, catalogErr
}

// Search lista municípios ordenados por nome, com filtro opcional
// acento-insensível por substring.
func Search(q string) ([]Municipio, error) {
	data, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(q) == "" {
		out := make([]Municipio, len(data))
		copy(out, data)
		return out, nil
	}

	needle := util.Fold(q)
	out := make([]Municipio, 0)
	for _, m := range data {
		if strings.Contains(util.Fold(m.Nome), needle) {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetByID busca um município no catálogo.
func GetByID(id int) (*Municipio, error) {
	data, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	for _, m := range data {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
