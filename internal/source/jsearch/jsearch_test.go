package jsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithoutKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	raws, err := a.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, raws)
	assert.Zero(t, calls)
}

func TestFetchSendsRapidAPIHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rk", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "jsearch.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))
		fmt.Fprint(w, `{"data":[{
			"job_title":"ML Engineer",
			"employer_name":"DeepCo",
			"job_city":"Bengaluru",
			"job_country":"IN",
			"job_description":"Train models",
			"job_apply_link":"https://jsearch.test/apply/1",
			"job_is_remote":false,
			"job_posted_at_timestamp":1767225600
		}]}`)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, APIKey: "rk"})
	raws, err := a.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "ML Engineer", raws[0].Title)
	assert.Equal(t, "Bengaluru, IN", raws[0].Location)
	require.NotNil(t, raws[0].PostedAt)
}

func TestFetchQuotaExhausted(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := New(Config{
		BaseURL:    srv.URL,
		APIKey:     "rk",
		Queries:    []string{"a", "b"},
		MaxQueries: 2,
	})
	raws, err := a.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, raws)
	assert.Equal(t, 1, calls, "quota hit stops the rest of the run")
}
