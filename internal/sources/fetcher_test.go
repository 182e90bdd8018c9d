package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/config"
)

func TestAllowed(t *testing.T) {
	f := NewFetcher(config.Sources{AllowedDomains: []string{"e-history.kz", "gov.kz"}}, zap.NewNop())

	tests := []struct {
		url  string
		want bool
	}{
		{"https://e-history.kz/kz/news/1", true},
		{"https://www.e-history.kz/", true},
		{"http://adilet.gov.kz/page", true},
		{"https://fake-e-history.kz/", false},
		{"https://e-history.kz.evil.com/", false},
		{"ftp://e-history.kz/", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := f.Allowed(tt.url); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	doc := `<html><head><style>body{}</style><script>var x = 1;</script></head>
<body><h1>Абылай хан</h1>
<p>Қазақ   хандығының   ханы.</p><noscript>enable js</noscript></body></html>`

	got, err := ExtractText(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if want := "Абылай хан Қазақ хандығының ханы."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFetch(t *testing.T) {
	long := strings.Repeat("Қазақ хандығы тарихы. ", 20)

	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.UserAgent())
		switch r.URL.Path {
		case "/long":
			fmt.Fprintf(w, "<p>%s</p>", long)
		case "/short":
			fmt.Fprint(w, "<p>қысқа</p>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(config.Sources{
		AllowedDomains: []string{"127.0.0.1"},
		MaxURLs:        3,
		Timeout:        time.Second,
		MinTextLength:  200,
	}, zap.NewNop())

	texts, used := f.Fetch(context.Background(), []string{
		srv.URL + "/short",
		srv.URL + "/missing",
		srv.URL + "/long",
		"https://example.com/blocked",
	})

	if len(texts) != 1 || len(used) != 1 || used[0] != srv.URL+"/long" {
		t.Fatalf("used = %v", used)
	}
	if !strings.HasPrefix(texts[0], "Қазақ хандығы тарихы.") {
		t.Errorf("text = %q", texts[0])
	}
	if len(agents) != 3 || agents[0] != userAgent {
		t.Errorf("agents = %v", agents)
	}
}

func TestFetchLimitsRequests(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, "<p>short</p>")
	}))
	defer srv.Close()

	f := NewFetcher(config.Sources{
		AllowedDomains: []string{"127.0.0.1"},
		MaxURLs:        3,
		Timeout:        time.Second,
		MinTextLength:  200,
	}, zap.NewNop())

	urls := make([]string, 8)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/page/%d", srv.URL, i)
	}

	texts, used := f.Fetch(context.Background(), urls)

	if len(texts) != 0 || len(used) != 0 {
		t.Errorf("used = %v, want none", used)
	}
	if n := requests.Load(); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}
}
