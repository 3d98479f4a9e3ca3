package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Func is a health check. A non-nil error marks the probe as failed.
type Func func(ctx context.Context) error

// PingFunc is the shape of a dependency's own ping method.
type PingFunc func(ctx context.Context) error

// MongoPinger is the subset of *mongo.Client used for readiness checks.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// HTTPDoer is the subset of *http.Client used by NewHTTPProbe.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewPingProbe adapts fn into a Func that labels its failures with name.
func NewPingProbe(name string, fn PingFunc) Func {
	return func(ctx context.Context) error {
		if fn == nil {
			return nilComponentError(name, "ping function")
		}
		if err := fn(contextOrBackground(ctx)); err != nil {
			return fmt.Errorf("%s probe failed: %w", name, err)
		}
		return nil
	}
}

// NewMongoPingProbe pings MongoDB through client. A nil readPref means
// readpref.Primary.
func NewMongoPingProbe(client MongoPinger, readPref *readpref.ReadPref) Func {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("mongo probe: client is nil")
		}

		rp := readPref
		if rp == nil {
			rp = readpref.Primary()
		}

		if err := client.Ping(contextOrBackground(ctx), rp); err != nil {
			return fmt.Errorf("mongo probe failed: %w", err)
		}
		return nil
	}
}

// NewFileProbe checks that every name exists in fsys as a regular file. It
// guards against serving from an empty or partially unpacked bundle.
func NewFileProbe(name string, fsys fs.FS, files ...string) Func {
	return func(context.Context) error {
		if fsys == nil {
			return nilComponentError(name, "filesystem")
		}
		for _, file := range files {
			info, err := fs.Stat(fsys, file)
			if err != nil {
				return fmt.Errorf("%s probe: %w", name, err)
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("%s probe: %s is not a regular file", name, file)
			}
		}
		return nil
	}
}

// NewHTTPProbe requests target and succeeds when the response passes the
// configured checks, a 2xx status by default. An empty method means GET.
func NewHTTPProbe(name, method, target string, client HTTPDoer, opts ...HTTPProbeOption) Func {
	return func(ctx context.Context) error {
		trimmedTarget := strings.TrimSpace(target)
		if trimmedTarget == "" {
			return fmt.Errorf("%s probe: target URL is required", name)
		}

		verb := strings.ToUpper(strings.TrimSpace(method))
		if verb == "" {
			verb = http.MethodGet
		}

		req, err := http.NewRequestWithContext(contextOrBackground(ctx), verb, trimmedTarget, nil)
		if err != nil {
			return fmt.Errorf("%s probe: failed to build request: %w", name, err)
		}

		cfg := buildHTTPProbeConfig(client, opts...)
		if err := cfg.applyMutators(req); err != nil {
			return fmt.Errorf("%s probe: request mutation failed: %w", name, err)
		}

		resp, err := cfg.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s probe request failed: %w", name, err)
		}
		defer resp.Body.Close()

		if err := cfg.validateResponse(resp); err != nil {
			return fmt.Errorf("%s probe: %w", name, err)
		}

		if cfg.drainResponse {
			if _, err := io.Copy(io.Discard, resp.Body); err != nil {
				return fmt.Errorf("%s probe: failed to drain response body: %w", name, err)
			}
		}
		return nil
	}
}
