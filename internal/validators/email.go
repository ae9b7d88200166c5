package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid confere se o domínio do e-mail resolve (MX
// primeiro, A/AAAA como fallback). Não garante caixa de entrada viva;
// só barra domínio digitado errado no cadastro.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
