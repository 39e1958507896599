package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// ActivationCodeKey is the log attribute carrying an activation code.
// Codes act as renewal tokens, so they are always redacted.
const ActivationCodeKey = "activation_code"

// Values that are redacted wherever they appear.
var (
	// CPF (999.999.999-99) and CNPJ (99.999.999/9999-99) tax ids typed into
	// company and client forms.
	cpfPattern  = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
	cnpjPattern = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)

	bearerPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
)

// sensitiveFields are attribute and struct field names that never reach a
// log line in clear text.
var sensitiveFields = []string{
	ActivationCodeKey, "ActivationCode",
	"taxId", "tax_id", "TaxID", "secondaryId", "SecondaryID",
	"password", "secret", "token", "api_key", "apiKey", "apikey",
	"authorization", "auth", "cookie", "session", "credentials",
	"access_token", "accessToken", "refresh_token", "refreshToken",
}

// DefaultRedactOptions returns the masq options applied to every handler.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveFields)+6)
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(cpfPattern),
		masq.WithRegex(cnpjPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
	)
}

// NewReplaceAttr creates a slog ReplaceAttr function that redacts secrets
// matched by DefaultRedactOptions plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
