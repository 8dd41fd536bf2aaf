package pedido

// CatalogoEquipamentos fixa os dez equipamentos aceitos em pedidos de
// maquinário e seus preços unitários de tabela.
var CatalogoEquipamentos = map[string]float64{
	"Trator de Esteiras":   1222500.00,
	"Motoniveladora":       1217352.22,
	"Caminhão Caçamba 6x4": 905300.00,
	"Caminhão Prancha":     900000.00,
	"Escavadeira":          830665.00,
	"Pá Carregadeira":      778250.00,
	"Rolo compactador":     716180.91,
	"Retroescavadeira":     484111.11,
	"Bob Cat":              430000.00,
	"Trator 100–110CV":     410000.00,
}

// catalogoOrdem preserva a ordem de exibição do catálogo.
var catalogoOrdem = []string{
	"Trator de Esteiras",
	"Motoniveladora",
	"Caminhão Caçamba 6x4",
	"Caminhão Prancha",
	"Escavadeira",
	"Pá Carregadeira",
	"Rolo compactador",
	"Retroescavadeira",
	"Bob Cat",
	"Trator 100–110CV",
}

// EquipamentoCatalogo é uma entrada do catálogo exposta pela API.
type EquipamentoCatalogo struct {
	Nome  string  `json:"nome"`
	Preco float64 `json:"preco"`
}

// Catalogo devolve o catálogo em ordem estável.
func Catalogo() []EquipamentoCatalogo {
	out := make([]EquipamentoCatalogo, 0, len(catalogoOrdem))
	for _, nome := range catalogoOrdem {
		out = append(out, EquipamentoCatalogo{Nome: nome, Preco: CatalogoEquipamentos[nome]})
	}
	return out
}
