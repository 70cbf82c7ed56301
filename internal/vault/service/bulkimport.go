package service

import (
	"strings"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
)

// ParseBulkCredentials reads one "login:secret" pair per line. The line is
// split on the first colon so secrets may contain colons. Both sides are
// trimmed. Blank lines, lines without a colon and lines with an empty side
// are dropped.
func ParseBulkCredentials(text string) []domain.CredentialPair {
	var pairs []domain.CredentialPair
	for line := range strings.Lines(text) {
		login, secret, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if p, ok := cleanPair(login, secret); ok {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// cleanPairs trims every pair and drops incomplete ones.
func cleanPairs(in []domain.CredentialPair) []domain.CredentialPair {
	out := make([]domain.CredentialPair, 0, len(in))
	for _, p := range in {
		if c, ok := cleanPair(p.Login, p.Secret); ok {
			out = append(out, c)
		}
	}
	return out
}

func cleanPair(login, secret string) (domain.CredentialPair, bool) {
	login = strings.TrimSpace(login)
	secret = strings.TrimSpace(secret)
	if login == "" || secret == "" {
		return domain.CredentialPair{}, false
	}
	return domain.CredentialPair{Login: login, Secret: secret}, true
}
