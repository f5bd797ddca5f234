// Package httpxtest drives fiber apps from handler tests.
package httpxtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"apgbuilders/internal/httpx"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// NewApp returns an app rendering errors the way the server does.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler})
}

// Do sends one request with an optional JSON body and returns the
// status and the raw response body.
func Do(t testing.TB, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// DoJSON is Do that also decodes the response into v.
func DoJSON(t testing.TB, app *fiber.App, method, path string, body, v any) int {
	t.Helper()
	status, out := Do(t, app, method, path, body)
	require.NoErrorf(t, json.Unmarshal(out, v), "body: %s", out)
	return status
}

// Error extracts the message of an {"error": ...} body.
func Error(t testing.TB, body []byte) string {
	t.Helper()
	var e struct {
		Error string `json:"error"`
	}
	require.NoErrorf(t, json.Unmarshal(body, &e), "body: %s", body)
	return e.Error
}

// Get sends a GET and returns the response for header checks.
func Get(t testing.TB, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}
