package courtlistener

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courtwatch-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixtureServer serves a minimal slice of the CourtListener API:
// an opinions list, one cluster, one docket and one opinion detail.
func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/opinions/", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/opinions/42/") {
			fmt.Fprint(w, `{"plain_text": "detail body text"}`)
			return
		}
		fmt.Fprintf(w, `{"results": [
			{
				"id": 42,
				"absolute_url": "/opinion/42/smith-v-jones/",
				"case_name": "Smith v. Jones",
				"date_filed": "2025-06-28",
				"author_str": "Roberts",
				"type": "010combined",
				"page_count": 12,
				"download_url": "https://example.org/42.pdf",
				"plain_text": "",
				"cluster": "%s/clusters/9/"
			}
		]}`, srv.URL)
	})
	mux.HandleFunc("/clusters/9/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": 9,
			"case_name": "Smith v. Jones",
			"date_filed": "2025-06-30",
			"docket": "%s/dockets/5/",
			"citations": [{"volume": 601, "reporter": "U.S.", "page": "218"}]
		}`, srv.URL)
	})
	mux.HandleFunc("/dockets/5/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"case_name": "Smith v. Jones", "court_id": "scotus"}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	base := []Option{WithLookupInterval(time.Nanosecond)}
	return NewClient(srv.URL, append(base, opts...)...)
}

func TestFetchResolvesNestedMetadata(t *testing.T) {
	srv := newFixtureServer(t)

	decisions, err := newTestClient(srv).Fetch(context.Background(), 30, 10)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	d := decisions[0]
	assert.Equal(t, int64(42), d.OpinionID)
	assert.Equal(t, int64(9), d.ClusterID)
	assert.Equal(t, "Smith v. Jones", d.CaseName)
	assert.Equal(t, "2025-06-30", d.DateFiled, "cluster date wins over list date")
	assert.Equal(t, "Roberts", d.Author)
	assert.Equal(t, "601 U.S. 218", d.Citation)
	assert.Equal(t, publicHost+"/opinion/42/smith-v-jones/", d.URL)
	assert.Equal(t, "detail body text", d.RawText, "empty list text falls back to the detail endpoint")
}

func TestFetchDegradesWhenClusterLookupFails(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/opinions/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [
			{
				"id": 7,
				"absolute_url": "/opinion/7/trump-v-anderson/",
				"case_name": "",
				"date_filed": "2025-06-28",
				"plain_text": "opinion body",
				"cluster": "%s/clusters/404/"
			}
		]}`, srv.URL)
	})
	mux.HandleFunc("/clusters/404/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	decisions, err := newTestClient(srv).Fetch(context.Background(), 30, 10)
	require.NoError(t, err, "nested failures never abort the record")
	require.Len(t, decisions, 1)

	d := decisions[0]
	assert.Equal(t, int64(7), d.OpinionID)
	assert.Zero(t, d.ClusterID)
	assert.Equal(t, "Trump V Anderson", d.CaseName, "case name derived from the URL slug")
	assert.Equal(t, "2025-06-28", d.DateFiled)
	assert.Equal(t, models.AuthorUnknown, d.Author)
	assert.Empty(t, d.Citation)
}

func TestFetchTopLevelFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv).Fetch(context.Background(), 30, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opinion query failed")
}

func TestFetchCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"id": 1, "plain_text": "a", "date_filed": "2025-06-30"},
			{"id": 2, "plain_text": "b", "date_filed": "2025-06-29"},
			{"id": 3, "plain_text": "c", "date_filed": "2025-06-28"}
		]}`)
	}))
	t.Cleanup(srv.Close)

	decisions, err := newTestClient(srv).Fetch(context.Background(), 30, 2)
	require.NoError(t, err)
	assert.Len(t, decisions, 2)
	assert.Equal(t, int64(1), decisions[0].OpinionID)
}

func TestFetchTruncatesLongText(t *testing.T) {
	long := strings.Repeat("x", 500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [{"id": 1, "plain_text": %q, "date_filed": "2025-06-30"}]}`, long)
	}))
	t.Cleanup(srv.Close)

	decisions, err := newTestClient(srv, WithMaxTextChars(100)).Fetch(context.Background(), 30, 10)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Len(t, decisions[0].RawText, 100)
}

func TestFetchSendsAuthAndUserAgent(t *testing.T) {
	var gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"results": []}`)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv, WithToken("secret-token")).Fetch(context.Background(), 30, 10)
	require.NoError(t, err)
	assert.Equal(t, "Token secret-token", gotAuth)
	assert.Equal(t, userAgent, gotAgent)
}

func TestResolveAuthorFallbackChain(t *testing.T) {
	tests := []struct {
		name    string
		op      opinionRecord
		cluster clusterRecord
		want    string
	}{
		{"opinion author wins", opinionRecord{AuthorStr: "Sotomayor"}, clusterRecord{AuthorStr: "Kagan"}, "Sotomayor"},
		{"cluster author second", opinionRecord{}, clusterRecord{AuthorStr: "Kagan"}, "Kagan"},
		{"cluster judges third", opinionRecord{}, clusterRecord{Judges: "Thomas, Alito"}, "Thomas, Alito"},
		{"per curiam opinion", opinionRecord{PerCuriam: true}, clusterRecord{}, models.AuthorPerCuriam},
		{"per curiam cluster", opinionRecord{}, clusterRecord{PerCuriam: true}, models.AuthorPerCuriam},
		{"whitespace is empty", opinionRecord{AuthorStr: "   "}, clusterRecord{}, models.AuthorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveAuthor(&tt.op, &tt.cluster))
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Trump V Anderson", titleFromSlug("/opinion/123/trump-v-anderson/"))
	assert.Equal(t, "Moore V Harper", titleFromSlug("/opinion/9/moore-v-harper"))
	assert.Empty(t, titleFromSlug(""))
	assert.Empty(t, titleFromSlug("///"))
}

func TestFormatCitation(t *testing.T) {
	assert.Equal(t, "601 U.S. 218", formatCitation([]clusterCitation{{Volume: 601, Reporter: "U.S.", Page: "218"}}))
	assert.Equal(t, "U.S.", formatCitation([]clusterCitation{{Reporter: "U.S."}}))
	assert.Empty(t, formatCitation(nil))
	assert.Equal(t, "601 U.S. 218",
		formatCitation([]clusterCitation{
			{Volume: 601, Reporter: "U.S.", Page: "218"},
			{Volume: 144, Reporter: "S. Ct.", Page: "100"},
		}), "only the first citation is used")
}
