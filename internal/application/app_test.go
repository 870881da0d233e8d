package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalKK/campaignmessaging/internal/config"
)

func defaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(func(k string) string {
		if k == "MESSAGE_TEMPLATE" {
			return "Hello [name]"
		}
		return ""
	})
	require.NoError(t, err)
	return cfg
}

func TestNew_ProcessesThroughConfiguredRule(t *testing.T) {
	app, err := New(defaults(t))
	require.NoError(t, err)

	res, err := app.Service.Process(context.Background(), "list.csv", strings.NewReader("Name,Phone\nBob,712345678\n"))
	require.NoError(t, err)
	require.Len(t, res.Result.Contacts, 1)
	assert.Equal(t, "254712345678", res.Result.Contacts[0].Phone)

	linked := app.Linker.Generate(res.Result.Contacts)
	assert.Equal(t, "https://wa.me/254712345678?text=Hello%20Bob", linked[0].Link)

	rec := httptest.NewRecorder()
	app.Metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "contactlinks_rows_accepted_total 1")
}

func TestServer_Routes(t *testing.T) {
	app, err := New(defaults(t))
	require.NoError(t, err)

	srv := app.Server()
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
