package purge

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
	"golang.org/x/text/unicode/norm"

	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
	"github.com/lucaswerkmeister/clean-recently-used/internal/xbel"
)

// Options configures a Filter beyond its directory prefixes.
type Options struct {
	// Patterns are gitignore-style rules matched against decoded paths.
	// A path excluded by the rules is removed; "!" rules re-include.
	Patterns []string

	// NormalizeUnicode compares prefixes, patterns and paths in Unicode NFC
	// form, so names stored decomposed (NFD) still match.
	NormalizeUnicode bool
}

// Filter decides which registry entries are removed.
type Filter struct {
	prefixes []string
	patterns []string
	rules    []pathrules.Rule
	matcher  *pathrules.Matcher
	nfc      bool
}

// Match describes why an entry was selected.
type Match struct {
	// Path is the decoded path of the entry.
	Path string
	// Rule is the prefix or pattern that matched.
	Rule string
}

// Result is the outcome of Apply.
type Result struct {
	// Removed lists the removed entries in document order.
	Removed []model.RemovedEntry
	// Kept is the number of bookmarks left in the document.
	Kept int
}

// NewFilter builds a Filter. Prefixes must be absolute; at least one prefix
// or pattern is required.
func NewFilter(prefixes []string, opts Options) (*Filter, error) {
	normalized, err := NormalizePrefixes(prefixes)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 && len(opts.Patterns) == 0 {
		return nil, ErrNoPrefix
	}

	f := &Filter{
		prefixes: normalized,
		patterns: opts.Patterns,
		nfc:      opts.NormalizeUnicode,
	}

	if len(opts.Patterns) > 0 {
		source := strings.Join(opts.Patterns, "\n")
		if f.nfc {
			source = norm.NFC.String(source)
		}
		rules, err := pathrules.ParseRulesString(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		m, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
			DefaultAction: pathrules.ActionInclude,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		f.rules = rules
		f.matcher = m
	}

	return f, nil
}

// Prefixes returns the normalized prefixes.
func (f *Filter) Prefixes() []string {
	return f.prefixes
}

// Patterns returns the configured patterns.
func (f *Filter) Patterns() []string {
	return f.patterns
}

// Match reports whether the entry with the given href is to be removed.
func (f *Filter) Match(href string) (Match, bool) {
	p, ok := DecodeFileURI(href)
	if !ok {
		return Match{}, false
	}

	cmp := p
	if f.nfc {
		cmp = norm.NFC.String(p)
	}
	for _, prefix := range f.prefixes {
		want := prefix
		if f.nfc {
			want = norm.NFC.String(prefix)
		}
		if IsUnder(cmp, want) {
			return Match{Path: p, Rule: prefix}, true
		}
	}

	if f.matcher != nil {
		res := f.matcher.Decide(cmp, false)
		if res.Matched && !res.Included {
			return Match{Path: p, Rule: f.rules[res.RuleIndex].Pattern}, true
		}
	}

	return Match{}, false
}

// Apply removes every matching bookmark from doc in place. Applying the
// same filter again removes nothing.
func (f *Filter) Apply(doc *xbel.Document) *Result {
	res := &Result{Removed: []model.RemovedEntry{}}

	doc.RemoveBookmarks(func(b *xbel.Bookmark) bool {
		m, ok := f.Match(b.Href())
		if !ok {
			return false
		}
		entry := model.RemovedEntry{
			Href:     b.Href(),
			Path:     m.Path,
			Rule:     m.Rule,
			Modified: b.Modified(),
		}
		for _, app := range b.Applications() {
			entry.Applications = append(entry.Applications, app.Name())
		}
		res.Removed = append(res.Removed, entry)
		return true
	})

	res.Kept = len(doc.Bookmarks())
	return res
}
