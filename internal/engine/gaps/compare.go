package gaps

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/anatolykoptev/gapsight/internal/engine"
	"golang.org/x/net/html"
)

// Requirements comparison — the "gap analysis" proper: promise keywords from
// a product page (or raw requirements text) scored against the keyword set of
// detected pain points.

// compareStopWords filters common English words that add noise to keyword matching.
var compareStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "get": true,
	"set": true, "such": true, "video": true, "videos": true,
}

// PromiseSet holds the keyword profile of a product's stated features.
// Emphasis marks keywords that appeared in headings or list items.
type PromiseSet struct {
	Keywords map[string]bool `json:"-"`
	Emphasis map[string]bool `json:"-"`
}

// Coverage is the result of comparing promises against pain points.
type Coverage struct {
	Score     float64  `json:"score"`
	Addressed []string `json:"addressed"`
	Unmatched []string `json:"unmatched"`
}

// extractKeywords tokenizes text into lowercase keywords, skipping stop words.
// Preserves tech suffixes like "c++", "c#", "node.js" by treating + # . as word chars.
func extractKeywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".") // drop trailing dots
		if len([]rune(w)) >= 3 && !compareStopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// PromisesFromText builds a promise set from raw requirements text.
func PromisesFromText(text string) *PromiseSet {
	return &PromiseSet{
		Keywords: extractKeywords(text),
		Emphasis: make(map[string]bool),
	}
}

// FetchPromises fetches a product/landing page and builds its promise set.
// Headings and list items get marked as emphasis: that's where feature
// claims live.
func FetchPromises(ctx context.Context, pageURL string) (*PromiseSet, error) {
	title, content, body, err := engine.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch promises: %w", err)
	}

	ps := PromisesFromText(title + "\n" + content)
	for kw := range extractKeywords(strings.Join(emphasisText(body), "\n")) {
		ps.Keywords[kw] = true
		ps.Emphasis[kw] = true
	}
	return ps, nil
}

// emphasisText walks the page HTML and collects heading and list-item text.
func emphasisText(body []byte) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "h1", "h2", "h3", "li", "strong":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					out = append(out, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// painKeywords builds the keyword profile of a pain-point list: the lexicon
// keywords that fired plus the vocabulary of the related comments.
func painKeywords(points []PainPoint) map[string]bool {
	kw := make(map[string]bool)
	for _, p := range points {
		for k := range extractKeywords(p.Keyword) {
			kw[k] = true
		}
		for _, c := range p.RelatedComments {
			for k := range extractKeywords(c) {
				kw[k] = true
			}
		}
	}
	return kw
}

// ScoreCoverage computes a weighted Jaccard overlap score (0–100) between a
// promise set and detected pain points. Keywords from headings and list
// items (PromiseSet.Emphasis) count double on both sides of the ratio, so a
// headline promise hitting an audience complaint moves the score more than
// a body-text match.
//
// Returns:
//   - Score: 0–100 (weighted Jaccard × 100, rounded to 1 decimal)
//   - Addressed: promise keywords the audience complains about anyway
//   - Unmatched: pain vocabulary the page never mentions (top 20)
func ScoreCoverage(promises *PromiseSet, points []PainPoint) Coverage {
	pains := painKeywords(points)

	var cov Coverage
	inter, promiseTotal := 0, 0
	for kw := range promises.Keywords {
		w := 1
		if promises.Emphasis[kw] {
			w = 2
		}
		promiseTotal += w
		if pains[kw] {
			inter += w
			cov.Addressed = append(cov.Addressed, kw)
		}
	}
	var unmatched []string
	for kw := range pains {
		if !promises.Keywords[kw] {
			unmatched = append(unmatched, kw)
		}
	}

	union := promiseTotal + len(unmatched)
	if union > 0 {
		raw := float64(inter) / float64(union) * 100
		cov.Score = float64(int(raw*10+0.5)) / 10 // round to 1 decimal
	}

	sort.Strings(cov.Addressed)
	sort.Strings(unmatched)
	if len(unmatched) > 20 {
		unmatched = unmatched[:20]
	}
	cov.Unmatched = unmatched
	return cov
}
