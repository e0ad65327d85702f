package tools

import (
	"fmt"
	"strings"
	"time"
)

// FormatBRL formata centavos como moeda brasileira: 123456 -> "R$ 1.234,56".
func FormatBRL(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	reais := cents / 100
	rest := cents % 100

	digits := fmt.Sprintf("%d", reais)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	out := "R$ " + strings.Join(parts, ".") + fmt.Sprintf(",%02d", rest)
	if negative {
		out = "-" + out
	}
	return out
}

// FormatDatetimeBR formata no padrão dd/mm/aaaa hh:mm. Nil vira "-".
func FormatDatetimeBR(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Format("02/01/2006 15:04")
}
