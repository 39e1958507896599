//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/memstore"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL string
	server  *apiServer
	client  *http.Client
	user    string

	response     *http.Response
	responseBody []byte

	// saved holds values remembered from earlier responses, substituted
	// into later paths as {name}.
	saved map[string]string
}

// newTestContext creates a new test context. BASE_URL points the suite at a
// running service; without it every scenario gets a fresh in-process API.
func newTestContext() *testContext {
	return &testContext{
		baseURL: os.Getenv("BASE_URL"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// reset clears scenario state.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		_ = tc.response.Body.Close()
	}

	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}

	tc.response = nil
	tc.responseBody = nil
	tc.user = ""
	tc.saved = map[string]string{}
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I am user "([^"]*)"$`, tc.iAmUser)
	ctx.Step(`^the installation is activated with "([^"]*)"$`, tc.theInstallationIsActivatedWith)
	ctx.Step(`^I request (GET|DELETE) "([^"]*)"$`, tc.iRequest)
	ctx.Step(`^I (POST|PUT) "([^"]*)" with:$`, tc.iSendWith)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberTheResponseField)
}

// theServiceIsRunning starts the in-process API when needed and verifies
// it is live.
func (tc *testContext) theServiceIsRunning() error {
	if tc.baseURL == "" && tc.server == nil {
		srv, err := newAPIServer(memstore.New())
		if err != nil {
			return fmt.Errorf("starting in-process API: %w", err)
		}

		tc.server = srv
	}

	if err := tc.do(http.MethodGet, "/-/live", nil); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.url(""), err)
	}

	return tc.theResponseStatusShouldBe(http.StatusOK)
}

func (tc *testContext) iAmUser(user string) error {
	tc.user = user
	return nil
}

func (tc *testContext) theInstallationIsActivatedWith(code string) error {
	body := fmt.Sprintf(`{"code":%q}`, code)
	if err := tc.do(http.MethodPost, "/api/v1/access/activate", []byte(body)); err != nil {
		return err
	}

	return tc.theResponseStatusShouldBe(http.StatusOK)
}

func (tc *testContext) iRequest(method, path string) error {
	return tc.do(method, path, nil)
}

func (tc *testContext) iSendWith(method, path string, body *godog.DocString) error {
	return tc.do(method, path, []byte(body.Content))
}

func (tc *testContext) url(path string) string {
	base := tc.baseURL
	if tc.server != nil {
		base = tc.server.URL
	}

	return base + tc.substitute(path)
}

// substitute replaces {name} with values remembered earlier in the scenario.
func (tc *testContext) substitute(s string) string {
	for name, value := range tc.saved {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}

	return s
}

func (tc *testContext) do(method, path string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tc.user != "" {
		req.Header.Set("X-User-ID", tc.user)
	}

	if tc.response != nil {
		_ = tc.response.Body.Close()
	}

	tc.response, err = tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.responseBody, err = io.ReadAll(tc.response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(path, expected string) error {
	got, err := tc.field(path)
	if err != nil {
		return err
	}

	expected = tc.substitute(expected)

	if got != expected {
		return fmt.Errorf("field %s: expected %q, got %q", path, expected, got)
	}

	return nil
}

func (tc *testContext) iRememberTheResponseField(path, name string) error {
	value, err := tc.field(path)
	if err != nil {
		return err
	}

	tc.saved[name] = value

	return nil
}

// field resolves a dotted path such as "items.0.id" in the JSON response.
func (tc *testContext) field(path string) (string, error) {
	var node any
	if err := json.Unmarshal(tc.responseBody, &node); err != nil {
		return "", fmt.Errorf("response is not JSON: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		switch v := node.(type) {
		case map[string]any:
			node = v[part]
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return "", fmt.Errorf("field %s: no element %q", path, part)
			}

			node = v[i]
		default:
			return "", fmt.Errorf("field %s: cannot descend into %q", path, part)
		}
	}

	switch v := node.(type) {
	case nil:
		return "", fmt.Errorf("field %s is missing", path)
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		raw, _ := json.Marshal(v)
		return string(raw), nil
	}
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
