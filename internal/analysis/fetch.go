package analysis

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pitheme.analysis")

// MaxPageBytes caps how much of a page Fetch reads.
const MaxPageBytes = 2 << 20

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL trims rawURL and adds https:// when no scheme is given.
// Blank input yields "".
func NormalizeURL(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if u == "" || schemePattern.MatchString(u) {
		return u
	}
	return "https://" + u
}

// Fetch downloads and analyses rawURL. Any failure is logged and answered
// with the fallback analysis, so callers always get something to theme.
func Fetch(ctx context.Context, client *http.Client, rawURL string) Analysis {
	url := NormalizeURL(rawURL)
	a, err := fetch(ctx, client, url)
	if err != nil {
		log.Warningf("using fallback analysis for %s: %s", url, err)
		return Fallback(url)
	}
	return a
}

func fetch(ctx context.Context, client *http.Client, url string) (Analysis, error) {
	if url == "" {
		return Analysis{}, fmt.Errorf("empty url")
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Analysis{}, fmt.Errorf("creating request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Analysis{}, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Analysis{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return Analysis{}, fmt.Errorf("reading page: %w", err)
	}
	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return FromHTML(finalURL, body)
}
