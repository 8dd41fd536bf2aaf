package util

import "testing"

func TestStripAccents(t *testing.T) {
	cases := []struct{ in, want string }{
		{"São José dos Pinhais", "Sao Jose dos Pinhais"},
		{"Maringá", "Maringa"},
		{"sem acento", "sem acento"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := StripAccents(tc.in); got != tc.want {
			t.Errorf("StripAccents(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  SÃO JOSÉ  ", "sao jose"},
		{"Curitiba", "curitiba"},
		{"cândido de abreu", "candido de abreu"},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}

func TestOnlyDigits(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(44) 99876-5432", "44998765432"},
		{"12.345.678-9", "123456789"},
		{"abc", ""},
	}
	for _, tc := range cases {
		if got := OnlyDigits(tc.in); got != tc.want {
			t.Errorf("OnlyDigits(%q) = %q, esperava %q", tc.in, got, tc.want)
		}
	}
}
