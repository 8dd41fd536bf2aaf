package pedido

import (
	"errors"
	"testing"
)

func TestValidateProtocoloStrict(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"24.298.238-6", "24.298.238-6", false},
		{"  24.298.238-6  ", "24.298.238-6", false},
		{"", "", false},
		{"   ", "", false},
		{"24298238-6", "", true},
		{"24.298.238-66", "", true},
		{"2.298.238-6", "", true},
		{"aa.bbb.ccc-d", "", true},
	}

	for _, tc := range cases {
		got, err := ValidateProtocoloStrict(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ValidateProtocoloStrict(%q): esperava erro", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateProtocoloStrict(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidateProtocoloStrict(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateProtocoloLenientUpdate(t *testing.T) {
	// falha se e somente se a contagem de dígitos for não-zero e != 9
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"24.298.238-6", false}, // 9 dígitos
		{"242982386", false},
		{"", false},
		{"sem-digitos", false}, // zero dígitos passa
		{"12345678", true},     // 8 dígitos
		{"1234567890", true},   // 10 dígitos
	}

	for _, tc := range cases {
		_, err := ValidateProtocoloLenientUpdate(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateProtocoloLenientUpdate(%q): err=%v, esperava erro=%v", tc.in, err, tc.wantErr)
		}
	}
}

func TestValidateTelefoneLenientUpdate(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"(41) 99999-9999", false}, // 11 dígitos
		{"4199999999", false},      // 10 dígitos
		{"", false},
		{"123", true},
		{"123456789012", true},
	}

	for _, tc := range cases {
		_, err := ValidateTelefoneLenientUpdate(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateTelefoneLenientUpdate(%q): err=%v, esperava erro=%v", tc.in, err, tc.wantErr)
		}
	}
}

func TestValidateNumeroLideranca(t *testing.T) {
	if _, err := ValidateNumeroLideranca("(41) 9999-9999"); err != nil {
		t.Fatalf("número com máscara deveria passar: %v", err)
	}
	if _, err := ValidateNumeroLideranca("abc"); err == nil {
		t.Fatal("número com letras deveria falhar")
	}
	if _, err := ValidateNumeroLideranca("   "); err == nil {
		t.Fatal("número vazio deveria falhar")
	}
}

func TestValidateStatus(t *testing.T) {
	vazio := ""
	if st, err := ValidateStatus(&vazio); err != nil || st != nil {
		t.Fatalf("status vazio deveria normalizar para nil, got %v, %v", st, err)
	}
	if st, err := ValidateStatus(nil); err != nil || st != nil {
		t.Fatalf("status ausente deveria normalizar para nil, got %v, %v", st, err)
	}

	ok := StatusEmAndamento
	st, err := ValidateStatus(&ok)
	if err != nil || st == nil || *st != StatusEmAndamento {
		t.Fatalf("status válido rejeitado: %v, %v", st, err)
	}

	invalido := "pendente"
	if _, err := ValidateStatus(&invalido); err == nil {
		t.Fatal("status fora do conjunto deveria falhar")
	}
}

func TestValidateItemCatalogo(t *testing.T) {
	item := ItemMaquinario{
		Equipamento:   "Trator de Esteiras",
		PrecoUnitario: 1222500.00,
		Quantidade:    2,
		Subtotal:      2445000.00,
	}
	if err := ValidateItem(item); err != nil {
		t.Fatalf("item válido rejeitado: %v", err)
	}

	// preço fora do catálogo por mais de um centavo
	item.PrecoUnitario = 1.00
	item.Subtotal = 1.00
	item.Quantidade = 1
	err := ValidateItem(item)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "preco_unitario" {
		t.Fatalf("esperava FieldError em preco_unitario, got %v", err)
	}

	desconhecido := ItemMaquinario{Equipamento: "Britadeira", PrecoUnitario: 10, Quantidade: 1, Subtotal: 10}
	if err := ValidateItem(desconhecido); err == nil {
		t.Fatal("equipamento fora do catálogo deveria falhar")
	}
}

func TestValidateItemAritmetica(t *testing.T) {
	item := ItemMaquinario{
		Equipamento:   "Bob Cat",
		PrecoUnitario: 430000.00,
		Quantidade:    3,
		Subtotal:      1290000.00,
	}
	if err := ValidateItem(item); err != nil {
		t.Fatalf("subtotal exato rejeitado: %v", err)
	}

	// dentro da tolerância de um centavo
	item.Subtotal = 1290000.009
	if err := ValidateItem(item); err != nil {
		t.Fatalf("desvio abaixo da tolerância rejeitado: %v", err)
	}

	item.Subtotal = 1290000.02
	if err := ValidateItem(item); err == nil {
		t.Fatal("subtotal fora da tolerância deveria falhar")
	}

	item.Subtotal = 1290000.00
	item.Quantidade = 0
	if err := ValidateItem(item); err == nil {
		t.Fatal("quantidade zero deveria falhar")
	}
}

func TestValidateValorTotal(t *testing.T) {
	itens := []ItemMaquinario{
		{Equipamento: "Escavadeira", PrecoUnitario: 830665.00, Quantidade: 1, Subtotal: 830665.00},
		{Equipamento: "Retroescavadeira", PrecoUnitario: 484111.11, Quantidade: 1, Subtotal: 484111.11},
	}

	if err := ValidateValorTotal(1314776.11, itens); err != nil {
		t.Fatalf("total exato rejeitado: %v", err)
	}
	if err := ValidateValorTotal(1314776.10, itens); err != nil {
		t.Fatalf("total dentro da tolerância rejeitado: %v", err)
	}
	if err := ValidateValorTotal(1314776.20, itens); err == nil {
		t.Fatal("total fora da tolerância deveria falhar")
	}
}
