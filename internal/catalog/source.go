package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed data/exercises.json
var bundled []byte

// BundledSource names the catalog compiled into the binary.
const BundledSource = "bundled"

const (
	defaultUserAgent = "lifter/0.1"
	requestTimeout   = 10 * time.Second
)

// Loader resolves a catalog source string to an Index.
type Loader struct {
	http      *http.Client
	userAgent string
}

// NewLoader builds a Loader with a bounded HTTP client.
func NewLoader() *Loader {
	return &Loader{
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}
}

// Load reads the catalog named by source: empty or "bundled" for the embedded
// document, an http(s) URL, or a file path.
func (l *Loader) Load(ctx context.Context, source string) (*Index, error) {
	trimmed := strings.TrimSpace(source)
	switch {
	case trimmed == "" || strings.EqualFold(trimmed, BundledSource):
		return ParseBytes(bundled)
	case IsRemote(trimmed):
		return l.fetch(ctx, trimmed)
	default:
		return loadFile(trimmed)
	}
}

// IsRemote reports whether source names an http(s) catalog.
func IsRemote(source string) bool {
	trimmed := strings.TrimSpace(source)
	return strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://")
}

func (l *Loader) fetch(ctx context.Context, raw string) (*Index, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", raw, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", l.userAgent)

	client := l.http
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog %s returned status %d", u.Redacted(), resp.StatusCode)
	}
	return Parse(resp.Body)
}

func loadFile(path string) (*Index, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
