package wiki

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newWikiServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/rest_v1/page/summary/broken":
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPortrait(t *testing.T) {
	srv := newWikiServer(t, map[string]string{
		"/api/rest_v1/page/summary/Albert Einstein": `{"type":"standard","originalimage":{"source":"https://img/einstein.jpg"},"thumbnail":{"source":"https://img/einstein-thumb.jpg"}}`,
		"/api/rest_v1/page/summary/Hamlet":          `{"type":"standard","thumbnail":{"source":"https://img/hamlet-thumb.jpg"}}`,
		"/api/rest_v1/page/summary/Mercury":         `{"type":"disambiguation","thumbnail":{"source":"https://img/x.jpg"}}`,
		"/api/rest_v1/page/summary/Faceless":        `{"type":"standard"}`,
	})
	c := NewClient(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	ctx := context.Background()

	got, err := c.Portrait(ctx, " Albert Einstein ")
	require.NoError(t, err)
	require.Equal(t, "https://img/einstein.jpg", got)

	got, err = c.Portrait(ctx, "Hamlet")
	require.NoError(t, err)
	require.Equal(t, "https://img/hamlet-thumb.jpg", got)

	for _, name := range []string{"Mercury", "Faceless", "Nobody", ""} {
		_, err = c.Portrait(ctx, name)
		require.ErrorIs(t, err, ErrNoPortrait, "name=%q", name)
	}

	_, err = c.Portrait(ctx, "broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoPortrait)
}
