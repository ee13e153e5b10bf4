package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig(maxChars int) *config.Config {
	return &config.Config{
		Scraper: config.ScraperConfig{
			Timeout:   5 * time.Second,
			MaxChars:  maxChars,
			UserAgent: "recipe-importer-test/1.0",
		},
	}
}

const samplePage = `<html>
<head><title>Chili</title><style>body { color: red }</style></head>
<body>
<nav>Home | Recipes | About</nav>
<header>Site Header</header>
<h1>Venison Chili</h1>
<p>2 lb ground venison</p>
<script>trackPageView();</script>
<p>Brown the meat and simmer.</p>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractTextStripsBoilerplate(t *testing.T) {
	text, err := ExtractText(samplePage)
	require.NoError(t, err)

	assert.Contains(t, text, "Venison Chili")
	assert.Contains(t, text, "2 lb ground venison")
	assert.Contains(t, text, "Brown the meat and simmer.")

	assert.NotContains(t, text, "trackPageView")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Home | Recipes")
	assert.NotContains(t, text, "Site Header")
	assert.NotContains(t, text, "Copyright")
}

func TestScrapeURLSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "recipe-importer-test/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := NewScraper(testConfig(15000))
	text, err := s.ScrapeURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Venison Chili")
}

func TestScrapeURLTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Venison Chili with a very long body of text</p></body></html>"))
	}))
	defer srv.Close()

	s := NewScraper(testConfig(10))
	text, err := s.ScrapeURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), 10)
}

func TestScrapeURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewScraper(testConfig(15000))
	_, err := s.ScrapeURL(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeFetchFailed, common.ErrorCode(err))
}

func TestScrapeURLConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := NewScraper(testConfig(15000))
	_, err := s.ScrapeURL(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeFetchFailed, common.ErrorCode(err))
}
