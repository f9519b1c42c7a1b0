package purge

import (
	"fmt"
	"path"
	"strings"
)

// NormalizePrefix validates and cleans a directory prefix. Trailing
// separators and "." or ".." components are resolved lexically; symlinks are
// not followed.
func NormalizePrefix(raw string) (string, error) {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return "", fmt.Errorf("%w: %q", ErrRelativePrefix, raw)
	}
	return path.Clean(raw), nil
}

// NormalizePrefixes normalizes every prefix and drops duplicates, keeping
// the first occurrence.
func NormalizePrefixes(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		p, err := NormalizePrefix(r)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

// IsUnder reports whether the clean absolute path p equals prefix or lies
// below it. The comparison is per path component.
func IsUnder(p, prefix string) bool {
	if prefix == "/" {
		return strings.HasPrefix(p, "/")
	}
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	rest := p[len(prefix):]
	return rest == "" || rest[0] == '/'
}
