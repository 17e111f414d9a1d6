package reference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomiclab/atomic/internal/domain"
)

func TestClient_RemoteLookup(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"element": r.URL.Query().Get("element"),
			"face":    r.URL.Query().Get("face"),
		}
		gotAuth = r.Header.Get("Authorization")

		_ = json.NewEncoder(w).Encode([]domain.ReferenceRecord{
			{
				Element:      "Cu",
				Face:         "100",
				D12ChangePct: -2.3,
				D23ChangePct: 0.9,
				Citation:     "remote database",
				Method:       "DFT",
			},
		})
	}))
	defer srv.Close()

	t.Setenv("TEST_REF_KEY", "secret-token")
	c := NewClient(srv.URL, "TEST_REF_KEY", time.Second, NewStore())

	records, err := c.Lookup(context.Background(), "Cu", "100")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "remote database", records[0].Citation)
	assert.Equal(t, map[string]string{"element": "Cu", "face": "100"}, gotQuery)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_NotFoundMeansNoRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, NewStore())

	records, err := c.Lookup(context.Background(), "Fe", "100")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_ServerErrorFallsBackToEmbedded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, NewStore())

	records, err := c.Lookup(context.Background(), "Cu", "100")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Citation, "Lindgren")
}

func TestClient_UnreachableEndpointFallsBack(t *testing.T) {
	// Nothing listens here.
	c := NewClient("http://127.0.0.1:1", "", 200*time.Millisecond, NewStore())

	records, err := c.Lookup(context.Background(), "Ag", "111")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Citation, "Soares")
}

func TestClient_BadBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, NewStore())

	records, err := c.Lookup(context.Background(), "Ni", "100")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ni", records[0].Element)
}

func TestClient_NoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.ReferenceRecord{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, NewStore())
	_, err := c.Lookup(context.Background(), "Cu", "100")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}
