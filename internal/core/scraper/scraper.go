package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"recipe-importer/internal/infrastructure/config"
	"recipe-importer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Scraper 網頁抓取服務
// 輸出契約：去除樣板後的純文字，長度不超過設定上限
type Scraper struct {
	config *config.Config
	client *resty.Client
}

// 去除的樣板元素，與正文無關
var boilerplateTags = map[string]bool{
	"script":   true,
	"style":    true,
	"nav":      true,
	"footer":   true,
	"header":   true,
	"aside":    true,
	"noscript": true,
}

var blankRunPattern = regexp.MustCompile(`\n\s*\n+`)

// NewScraper 創建網頁抓取服務
func NewScraper(cfg *config.Config) *Scraper {
	client := resty.New().
		SetTimeout(cfg.Scraper.Timeout).
		SetHeader("User-Agent", cfg.Scraper.UserAgent)

	return &Scraper{
		config: cfg,
		client: client,
	}
}

// ScrapeURL 抓取網頁並回傳截斷後的純文字
// 非 200、逾時或無法連線都以 FETCH_FAILED 形式回傳
func (s *Scraper) ScrapeURL(ctx context.Context, url string) (string, error) {
	common.LogInfo("開始抓取網頁", zap.String("url", url))

	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", common.NewFetchError(fmt.Sprintf("failed to fetch URL %s", url), err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", common.NewFetchError(
			fmt.Sprintf("failed to fetch URL %s: status code %d", url, resp.StatusCode()), nil)
	}

	text, err := ExtractText(resp.String())
	if err != nil {
		return "", common.NewFetchError(fmt.Sprintf("failed to parse HTML from %s", url), err)
	}

	// 截斷以避免超出模型輸入預算
	if len(text) > s.config.Scraper.MaxChars {
		text = text[:s.config.Scraper.MaxChars]
	}

	common.LogInfo("網頁抓取完成",
		zap.String("url", url),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

// ExtractText 去除樣板元素後取出 HTML 的純文字
func ExtractText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && boilerplateTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				sb.WriteString(trimmed)
				sb.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// 合併連續空行
	text := blankRunPattern.ReplaceAllString(sb.String(), "\n\n")
	return strings.TrimSpace(text), nil
}
