package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testNominatim(baseURL string) *NominatimClient {
	return NewNominatimClient(baseURL, "voltgrid-test/1.0", "Turkey", "tr", 2*time.Second, zap.NewNop())
}

func TestNominatimLookup(t *testing.T) {
	t.Run("single best match", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Atatürk Cad. No:5, ISTANBUL, Turkey", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Equal(t, "tr", r.URL.Query().Get("countrycodes"))
			assert.Equal(t, "voltgrid-test/1.0", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"41.0082","lon":"28.9784","display_name":"İstanbul"}]`))
		}))
		defer srv.Close()

		coord, ok, err := testNominatim(srv.URL).Lookup(context.Background(), "Atatürk Cad. No:5", "ISTANBUL")
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 41.0082, coord.Lat, 1e-6)
		assert.InDelta(t, 28.9784, coord.Lon, 1e-6)
	})

	t.Run("empty result is a miss, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, ok, err := testNominatim(srv.URL).Lookup(context.Background(), "Nowhere", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed body is a miss, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"`))
		}))
		defer srv.Close()

		_, ok, err := testNominatim(srv.URL).Lookup(context.Background(), "Somewhere", "ANKARA")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unparseable coordinates are a miss", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"28.9784"}]`))
		}))
		defer srv.Close()

		_, ok, err := testNominatim(srv.URL).Lookup(context.Background(), "Somewhere", "ANKARA")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-OK status is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "over capacity", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, _, err := testNominatim(srv.URL).Lookup(context.Background(), "Somewhere", "ANKARA")
		assert.Error(t, err)
	})

	t.Run("unreachable endpoint is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, _, err := testNominatim(srv.URL).Lookup(context.Background(), "Somewhere", "ANKARA")
		assert.Error(t, err)
	})

	t.Run("city omitted when empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Liman Cad. No:3, Turkey", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, _, err := testNominatim(srv.URL).Lookup(context.Background(), "Liman Cad. No:3", "")
		require.NoError(t, err)
	})
}
