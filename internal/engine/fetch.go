package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// FetchPage fetches a web page and extracts its main content as markdown.
// Extraction chain: go-readability → goquery → regex stripping.
// Returns the page title, the extracted markdown (capped at MaxContentChars),
// and the raw HTML body for callers doing their own structural parsing.
func FetchPage(ctx context.Context, rawURL string) (title, content string, body []byte, err error) {
	metrics.FetchRequests.Add(1)
	defer func() {
		if err != nil {
			metrics.FetchErrors.Add(1)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	body, err = fetchHTML(ctx, rawURL)
	if err != nil {
		return "", "", nil, err
	}

	parsedURL, _ := url.Parse(rawURL)
	article, rerr := readability.FromReader(bytes.NewReader(body), parsedURL)
	if rerr != nil {
		title, content = extractWithGoquery(body)
		return title, capContent(content), body, nil
	}

	md, merr := htmltomarkdown.ConvertString(article.Content)
	if merr != nil {
		md = article.TextContent
	}
	return article.Title, capContent(strings.TrimSpace(md)), body, nil
}

// fetchHTML GETs a page with browser-like headers, retrying transient failures.
// Falls back to the stealth browser client when the plain client is blocked.
func fetchHTML(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", RandomUserAgent())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		return cfg.HTTPClient.Do(req)
	})
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
		}
		err = fmt.Errorf("fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	// Blocked or unreachable — try the Chrome-fingerprint client.
	if cfg.BrowserClient != nil {
		data, _, status, berr := cfg.BrowserClient.Do(http.MethodGet, rawURL, ChromeHeaders(), nil)
		if berr == nil && status == http.StatusOK {
			return data, nil
		}
	}
	return nil, err
}

// extractWithGoquery pulls title and main-content text when readability fails.
func extractWithGoquery(body []byte) (title, content string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", stripTags(string(body))
	}

	title = doc.Find("title").First().Text()

	doc.Find("script, style, noscript, iframe, svg, header, footer, nav, aside").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	sel := doc.Find("article, main, .content, #content").First()
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}
	return title, collapseWhitespace(sel.Text())
}

var wsRe = regexp.MustCompile(`\s+`)

// stripTags is the last-resort extraction: drop boilerplate blocks, then all tags.
func stripTags(html string) string {
	for _, tag := range []string{"script", "style", "noscript", "header", "footer", "nav", "aside", "iframe"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}
	return collapseWhitespace(htmlTagRe.ReplaceAllString(html, ""))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

func capContent(s string) string {
	if cfg.MaxContentChars > 0 && len(s) > cfg.MaxContentChars {
		return s[:cfg.MaxContentChars] + "..."
	}
	return s
}
