//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/access"
	"github.com/jsamuelsen/quotedesk/internal/adapters/clients"
	"github.com/jsamuelsen/quotedesk/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quotedesk/internal/adapters/http"
	"github.com/jsamuelsen/quotedesk/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// viaCEPStub answers like ViaCEP: one known code, {"erro":true} for the
// rest of the well-formed ones.
func viaCEPStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/ws/01001000/json/" {
			_, _ = w.Write([]byte(`{
				"cep": "01001-000",
				"logradouro": "Praça da Sé",
				"complemento": "lado ímpar",
				"bairro": "Sé",
				"localidade": "São Paulo",
				"uf": "SP"
			}`))

			return
		}

		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
}

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		BaseURL:     baseURL,
		ServiceName: "viacep",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
	}
}

// apiServer is the full HTTP API on an in-process listener.
type apiServer struct {
	*httptest.Server

	Services *app.Services
	viacep   *httptest.Server
}

func (s *apiServer) Close() {
	s.Server.Close()
	s.viacep.Close()
}

// newAPIServer wires the same graph as cmd/service over store.
func newAPIServer(store ports.KeyValueStore) (*apiServer, error) {
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	viacep := viaCEPStub()

	httpClient, err := clients.New(testClientConfig(viacep.URL))
	if err != nil {
		viacep.Close()
		return nil, err
	}

	postalCodes := acl.NewPostalCodeClient(httpClient, logger)

	registry := ports.NewHealthRegistry()
	if err := registry.RegisterOptional(postalCodes); err != nil {
		viacep.Close()
		return nil, err
	}

	services := app.NewServices(app.ServicesConfig{
		StoreConfig:  app.StoreConfig{Store: store, Logger: logger},
		Validator:    access.NewAllowList(config.DefaultAccessCodes),
		ValidityDays: config.DefaultAccessValidityDays,
	})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:      logger,
		ServiceName: "quotedesk-integration",
		AuthConfig:  &config.AuthConfig{SubjectHeader: "X-User-ID", DefaultUser: config.DefaultUser},
		Access:      services.Gate,
		Timeout:     5 * time.Second,
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "none", "now"), nil),
		Gate:        handlers.NewAccessHandler(services.Gate),
		Company:     handlers.NewCompanyHandler(services.Company),
		Catalog:     handlers.NewCatalogHandler(services.Catalog),
		Quotes:      handlers.NewQuoteHandler(services.History),
		Backup:      handlers.NewBackupHandler(services.Backup),
		Address:     handlers.NewAddressHandler(app.NewAddressService(postalCodes, logger)),
	})

	return &apiServer{
		Server:   httptest.NewServer(engine),
		Services: services,
		viacep:   viacep,
	}, nil
}
