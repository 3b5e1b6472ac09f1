package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/failure"
)

func TestCurrent_ParsesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Indore", r.URL.Query().Get("q"))
		assert.Equal(t, "key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(`{"weather":[{"description":"light rain"}],"main":{"temp":24.5,"humidity":81},"wind":{"speed":3.6}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client())
	c.BaseURL = srv.URL

	rep, err := c.Current(context.Background(), "Indore", "key")
	require.NoError(t, err)
	assert.Equal(t, Report{Description: "light rain", TemperatureC: 24.5, HumidityPct: 81, WindSpeed: 3.6}, rep)
	assert.Equal(t, "Current weather in Indore is light rain. Temperature 24.5°C. Humidity 81%. Wind 3.6 m/s.", rep.Message("Indore"))
}

func TestCurrent_MissingFieldsDegrade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main":{"temp":10}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client())
	c.BaseURL = srv.URL

	rep, err := c.Current(context.Background(), "Oslo", "key")
	require.NoError(t, err)
	assert.Equal(t, "unknown", rep.Description)
	assert.Equal(t, 10.0, rep.TemperatureC)
}

func TestCurrent_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status_non_2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401}`))
		}},
		{"bad_json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("not-json")) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(srv.Client())
			c.BaseURL = srv.URL

			_, err := c.Current(context.Background(), "Indore", "key")
			assert.Error(t, err)
		})
	}
}

func TestCurrent_NoKeySkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(srv.Client())
	c.BaseURL = srv.URL

	_, err := c.Current(context.Background(), "Indore", "")
	assert.ErrorIs(t, err, failure.ErrNotConfigured)
	assert.False(t, called)
}
