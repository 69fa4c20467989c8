package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/mollie-cli/internal/credentials"
	"github.com/magabrotheeeer/mollie-cli/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestApp(t *testing.T, settings string, opts Options) (*App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts.ConfigPath = writeFile(t, "config.yaml", settings)
	opts.In = strings.NewReader("")
	opts.Out = &bytes.Buffer{}
	opts.Err = &logs
	if opts.Version == "" {
		opts.Version = "test"
	}
	a, err := New(opts)
	require.NoError(t, err)
	return a, &logs
}

func TestNew(t *testing.T) {
	credPath := writeFile(t, "conf.toml", "[keys]\ntest = \"test_abc\"\n")

	a, _ := newTestApp(t, "env: dev\n", Options{CredentialsPath: credPath, Test: true, NoColor: true})

	assert.Equal(t, models.ModeTest, a.Mode)
	assert.Equal(t, credPath, a.Resolver.Path())
	assert.Equal(t, "https://api.mollie.dev/v2", a.Config.BaseURL())
	assert.Equal(t, "mol/test", a.userAgent)
	assert.NotNil(t, a.Collector)
	assert.NotNil(t, a.Renderer)
	assert.NotNil(t, a.Metrics)
}

func TestNew_DebugFlagOverridesLevel(t *testing.T) {
	a, logs := newTestApp(t, "log_level: error\n", Options{Debug: true})

	a.Log.Debug("visible")
	assert.Contains(t, logs.String(), "visible")
	assert.Contains(t, logs.String(), "settings loaded")
	assert.Contains(t, logs.String(), "LogLevel: error")
}

func TestNew_BadConfig(t *testing.T) {
	_, err := New(Options{
		ConfigPath: writeFile(t, "config.yaml", "env: staging\n"),
		In:         strings.NewReader(""),
		Out:        &bytes.Buffer{},
		Err:        &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging")
}

func TestApp_Client(t *testing.T) {
	credPath := writeFile(t, "conf.toml", "[keys]\nlive = \"live_abc\"\n")

	t.Run("ключ найден", func(t *testing.T) {
		a, _ := newTestApp(t, "env: production\n", Options{CredentialsPath: credPath})
		client, err := a.Client()
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("ключа для режима нет", func(t *testing.T) {
		a, _ := newTestApp(t, "env: production\n", Options{CredentialsPath: credPath, Test: true})
		client, err := a.Client()
		require.Error(t, err)
		assert.Nil(t, client)
		assert.ErrorIs(t, err, credentials.ErrMissingCredential)
	})
}

func TestApp_Finish(t *testing.T) {
	var hits atomic.Int32
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Contains(t, r.URL.Path, "/metrics/job/mol-test/command")
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	settings := "metrics:\n  pushgateway_url: " + gateway.URL + "\n  job: mol-test\n"
	a, _ := newTestApp(t, settings, Options{})

	a.Finish(context.Background(), "balances list")
	assert.Equal(t, int32(1), hits.Load())
}

func TestApp_FinishWithoutGateway(t *testing.T) {
	a, logs := newTestApp(t, "env: production\n", Options{Debug: true})

	a.Finish(context.Background(), "balances list")
	assert.NotContains(t, logs.String(), "metrics pushed")
	assert.NotContains(t, logs.String(), "failed to push metrics")
}

func TestApp_FinishPushFailureIsLogged(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer gateway.Close()

	a, logs := newTestApp(t, "metrics:\n  pushgateway_url: "+gateway.URL+"\n", Options{})

	assert.NotPanics(t, func() {
		a.Finish(context.Background(), "payments create")
	})
	assert.Contains(t, logs.String(), "failed to push metrics")
}
