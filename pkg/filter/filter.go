// Package filter decides whether an item is in-domain and not noise before any embedding is spent on it.
package filter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultKeywords is the domain keyword set used when none is configured
var DefaultKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml",
	"deep learning", "neural", "neural network", "robotics",
	"vision model", "nlp", "transformer", "rag",
	"llm", "large language model", "chatgpt", "openai",
	"anthropic", "google ai", "meta ai",
}

// DefaultExcludePatterns is the noise pattern set used when none is configured
var DefaultExcludePatterns = []string{
	`\bi['’]?m a junior dev\b`,
	`\bjust got laid off\b`,
	`\bcareer (?:advice|ladder)\b`,
	`\bjob hunting\b`,
	`\bwho['’]?s hiring\b`,
	`\bself[- ]promotion\b`,
	`\b(?:monthly|weekly|discussion) thread\b`,
	`\bi am a bot\b`,
	`\bcontact the moderators\b`,
}

// Filter is a two-stage relevance gate: exclusion patterns first, then word-boundary keyword inclusion.
// It holds only compiled, read-only state and is safe for concurrent use.
type Filter struct {
	keywords  *regexp.Regexp
	excludes  []*regexp.Regexp
	signature string
}

// New compiles keywords and exclusion patterns into a filter.
// Keywords are literal phrases matched case-insensitively at word boundaries,
// exclusion patterns are case-insensitive regular expressions.
func New(keywords, excludePatterns []string) (*Filter, error) {
	kws := normalize(keywords, strings.ToLower)
	if len(kws) == 0 {
		return nil, fmt.Errorf("at least one keyword is required")
	}

	// longer phrases first so alternation prefers "neural network" over "neural"
	sorted := append([]string(nil), kws...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	alts := make([]string, len(sorted))
	for i, kw := range sorted {
		alts[i] = keywordPattern(kw)
	}
	kwRe, err := regexp.Compile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile keywords: %w", err)
	}

	patterns := normalize(excludePatterns, nil)
	excludes := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", p, err)
		}
		excludes = append(excludes, re)
	}

	return &Filter{keywords: kwRe, excludes: excludes, signature: signature(kws, patterns)}, nil
}

// IsRelevant reports whether an item with the given title and summary is in-domain and not noise.
// Exclusion always wins over keyword matches; a keyword in the title accepts without looking at the summary.
func (f *Filter) IsRelevant(title, summary string) bool {
	if f.Excluded(title + " " + summary) {
		return false
	}
	if f.keywords.MatchString(title) {
		return true
	}
	return f.keywords.MatchString(summary)
}

// Excluded reports whether text matches any of the exclusion patterns
func (f *Filter) Excluded(text string) bool {
	for _, re := range f.excludes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Signature returns a stable fingerprint of the keyword and pattern sets.
// Items rejected under one signature are evaluated again once the signature changes.
func (f *Filter) Signature() string {
	return f.signature
}

// keywordPattern quotes kw and guards both ends. \b only works next to a word character,
// so an edge like the "+" of "c++" or the "." of ".net" gets a non-word or text boundary guard instead.
func keywordPattern(kw string) string {
	first, _ := utf8.DecodeRuneInString(kw)
	last, _ := utf8.DecodeLastRuneInString(kw)
	left, right := `(?:^|\W)`, `(?:\W|$)`
	if isWordRune(first) {
		left = `\b`
	}
	if isWordRune(last) {
		right = `\b`
	}
	return left + regexp.QuoteMeta(kw) + right
}

// isWordRune matches the ASCII word class used by \b and \W
func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// normalize trims, dedupes and sorts the list, applying fold to each element if set.
// patterns are not lower-cased as that would change escapes like \S or \W.
func normalize(list []string, fold func(string) string) []string {
	seen := make(map[string]bool, len(list))
	res := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if fold != nil {
			s = fold(s)
		}
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		res = append(res, s)
	}
	sort.Strings(res)
	return res
}

func signature(keywords, patterns []string) string {
	h := sha256.New()
	for _, kw := range keywords {
		h.Write([]byte("k:" + kw + "\n"))
	}
	for _, p := range patterns {
		h.Write([]byte("x:" + p + "\n"))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
