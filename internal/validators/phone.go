package validators

import "strings"

// NormalizePhone reduz o telefone a dígitos (DDD + número). Telefones
// normalizados são a chave de deduplicação de paciente por prestador.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()

	// descarta o código do país quando informado
	if len(digits) > 11 && strings.HasPrefix(digits, "55") {
		digits = digits[2:]
	}

	return digits
}

// IsPhoneValid aceita fixo (10 dígitos) ou celular (11 dígitos).
func IsPhoneValid(phone string) bool {
	d := NormalizePhone(phone)
	return len(d) == 10 || len(d) == 11
}
