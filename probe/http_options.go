package probe

import (
	"fmt"
	"io"
	"net/http"

	"github.com/drblury/swaggerui/jsonutil"
)

// HTTPStatusExpectation decides whether a status code is acceptable.
type HTTPStatusExpectation func(status int) bool

// HTTPRequestMutator edits the outbound request before it is sent.
type HTTPRequestMutator func(req *http.Request) error

// HTTPResponseValidator inspects the response and may veto the probe.
type HTTPResponseValidator func(resp *http.Response) error

// HTTPProbeOption configures NewHTTPProbe.
type HTTPProbeOption func(*httpProbeConfig)

type httpProbeConfig struct {
	client             HTTPDoer
	expect             HTTPStatusExpectation
	requestMutators    []HTTPRequestMutator
	responseValidators []HTTPResponseValidator
	drainResponse      bool
}

func buildHTTPProbeConfig(client HTTPDoer, opts ...HTTPProbeOption) *httpProbeConfig {
	cfg := &httpProbeConfig{
		client:        client,
		expect:        defaultHTTPStatusExpectation,
		drainResponse: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	if cfg.expect == nil {
		cfg.expect = defaultHTTPStatusExpectation
	}
	return cfg
}

func (c *httpProbeConfig) applyMutators(req *http.Request) error {
	for _, mutate := range c.requestMutators {
		if mutate == nil {
			continue
		}
		if err := mutate(req); err != nil {
			return err
		}
	}
	return nil
}

func (c *httpProbeConfig) validateResponse(resp *http.Response) error {
	if !c.expect(resp.StatusCode) {
		return fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	for _, validator := range c.responseValidators {
		if validator == nil {
			continue
		}
		if err := validator(resp); err != nil {
			return err
		}
	}
	return nil
}

// WithHTTPClient overrides the client used for the probe.
func WithHTTPClient(client HTTPDoer) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.client = client
	}
}

// WithHTTPStatusExpectation installs a custom status check.
func WithHTTPStatusExpectation(expect HTTPStatusExpectation) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.expect = expect
	}
}

// WithHTTPAllowedStatuses accepts only the listed status codes. An empty
// list keeps the 2xx default.
func WithHTTPAllowedStatuses(statuses ...int) HTTPProbeOption {
	allowed := make(map[int]struct{}, len(statuses))
	for _, status := range statuses {
		allowed[status] = struct{}{}
	}
	return func(cfg *httpProbeConfig) {
		cfg.expect = func(status int) bool {
			if len(allowed) == 0 {
				return defaultHTTPStatusExpectation(status)
			}
			_, ok := allowed[status]
			return ok
		}
	}
}

// WithHTTPRequestMutator registers a mutator run before dispatch.
func WithHTTPRequestMutator(mutator HTTPRequestMutator) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.requestMutators = append(cfg.requestMutators, mutator)
	}
}

// WithHTTPResponseValidator registers a validator run after the status check.
func WithHTTPResponseValidator(validator HTTPResponseValidator) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.responseValidators = append(cfg.responseValidators, validator)
	}
}

// WithHTTPJSONDocument requires the response body to be a JSON object, which
// is what a Swagger UI needs to render an API document.
func WithHTTPJSONDocument() HTTPProbeOption {
	return WithHTTPResponseValidator(func(resp *http.Response) error {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		var doc map[string]any
		if err := jsonutil.Unmarshal(body, &doc); err != nil {
			return fmt.Errorf("document is not a JSON object: %w", err)
		}
		return nil
	})
}

// WithHTTPDrainResponseBody toggles draining the body after validation.
func WithHTTPDrainResponseBody(enabled bool) HTTPProbeOption {
	return func(cfg *httpProbeConfig) {
		cfg.drainResponse = enabled
	}
}
