package swaggerui

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/drblury/swaggerui/assets"
	"github.com/drblury/swaggerui/responder"
)

const testIndex = `<script>
  const ui = SwaggerUIBundle({
    url: "http://petstore.swagger.io/v2/swagger.json",
    fallback: "http://petstore.swagger.io/v2/swagger.json",
  });
</script>`

func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"index.html":             {Data: []byte(testIndex)},
		"swagger-ui-bundle.js":   {Data: []byte("var SwaggerUIBundle = function () {};")},
		"swagger-ui.css":         {Data: []byte(".swagger-ui{}")},
		"fonts/droid-sans.woff2": {Data: []byte{0x77, 0x4f, 0x46, 0x32}},
		"swagger-ui.js.map":      {Data: []byte("{}")},
	}
}

func testResolver() *assets.Resolver {
	return assets.NewResolver(testBundle())
}

func decodeProbePayload(t *testing.T, body []byte) probePayload {
	t.Helper()

	var payload probePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode probe payload: %v (body: %s)", err, string(body))
	}
	return payload
}

func decodeProblemDetails(t *testing.T, body []byte) responder.ProblemDetails {
	t.Helper()

	var problem responder.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v (body: %s)", err, string(body))
	}
	return problem
}
