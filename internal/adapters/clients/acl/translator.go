package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// viaCEPResponse is the ViaCEP payload. It never leaves this package.
type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`

	// Erro is true for well-formed codes that do not exist. Older responses
	// send the string "true".
	Erro flexBool `json:"erro"`
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*b = flexBool(strings.EqualFold(s, "true"))

	return nil
}

// translateAddress converts a ViaCEP response into a domain.Address.
func translateAddress(ext *viaCEPResponse, postalCode string) (domain.Address, error) {
	if ext.Erro {
		return domain.Address{}, domain.NewNotFoundError(domain.EntityPostalCode, postalCode)
	}

	if ext.Localidade == "" || ext.UF == "" {
		return domain.Address{}, domain.NewUnavailableError("viacep", "response without city or state")
	}

	return domain.Address{
		Street:       strings.TrimSpace(ext.Logradouro),
		Neighborhood: strings.TrimSpace(ext.Bairro),
		City:         strings.TrimSpace(ext.Localidade),
		State:        strings.ToUpper(strings.TrimSpace(ext.UF)),
	}, nil
}
