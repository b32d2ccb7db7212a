package githubinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obspy/obshub/internal/core/status"
)

func TestClient_ListOpenPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/obspy/obspy/pulls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "open", q.Get("state"))
		assert.Equal(t, "updated", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("direction"))

		switch q.Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/repos/obspy/obspy/pulls?page=2>; rel="next"`, r.Host))
			fmt.Fprint(w, `[{"number":12,"title":"SAC fix","head":{"sha":"aaa111","user":{"login":"alice"}}}]`)
		case "2":
			fmt.Fprint(w, `[{"number":9,"title":"Docs","head":{"sha":"bbb222","user":{"login":"obspy"}}}]`)
		}
	})

	prs, err := newTestClient(t, mux).ListOpenPullRequests(context.Background())
	require.NoError(t, err)

	require.Len(t, prs, 2)
	assert.Equal(t, 12, prs[0].Number)
	assert.Equal(t, "alice", prs[0].HeadOwner)
	assert.Equal(t, "aaa111", prs[0].HeadSHA)
	assert.Equal(t, 9, prs[1].Number)
	assert.Equal(t, "Docs", prs[1].Title)
}

func TestClient_ListStatuses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/obspy/obspy/commits/abc123/statuses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"context":"docs","state":"success","description":"built","updated_at":"2024-03-01T09:00:00Z"},
			{"context":"docs","state":"pending","updated_at":"2024-03-01T08:00:00Z"}
		]`)
	})

	statuses, err := newTestClient(t, mux).ListStatuses(context.Background(), "abc123")
	require.NoError(t, err)

	require.Len(t, statuses, 2)
	assert.Equal(t, status.StateSuccess, statuses[0].State)
	assert.Equal(t, "built", statuses[0].Description)
	assert.Equal(t, 9, statuses[0].UpdatedAt.Hour())

	state, ok := status.Current(statuses, "docs")
	require.True(t, ok)
	assert.Equal(t, status.StateSuccess, state)
}

func TestClient_CreateStatus(t *testing.T) {
	var posted map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/obspy/obspy/statuses/abc123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"state":"pending","context":"docker-testbot"}`)
	})

	err := newTestClient(t, mux).CreateStatus(context.Background(), "abc123", status.Status{
		Context:     "docker-testbot",
		State:       status.StatePending,
		Description: "queued",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"state":       "pending",
		"context":     "docker-testbot",
		"description": "queued",
	}, posted)
}

func TestClient_CreateStatus_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/obspy/obspy/statuses/abc123", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Validation Failed"}`)
	})

	err := newTestClient(t, mux).CreateStatus(context.Background(), "abc123", status.Status{
		Context: "docs",
		State:   status.StateError,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create status on abc123")
}
