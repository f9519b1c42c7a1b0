package purge

import (
	"path"
	"strings"
)

const fileScheme = "file://"

// DecodeFileURI returns the local path named by a file:// URI. It reports
// false for other schemes and for remote hosts.
//
// The decoded path is returned as raw bytes; it need not be valid UTF-8.
// A "%" that does not start a valid escape is kept literally.
func DecodeFileURI(href string) (string, bool) {
	if len(href) < len(fileScheme) || !strings.EqualFold(href[:len(fileScheme)], fileScheme) {
		return "", false
	}
	rest := href[len(fileScheme):]

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return "", false
	}
	if host := rest[:slash]; host != "" && !strings.EqualFold(host, "localhost") {
		return "", false
	}

	return path.Clean(unescape(rest[slash:])), true
}

// unescape decodes every valid %XX escape in s and copies everything else
// through unchanged. "+" is not a space.
func unescape(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				sb.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
