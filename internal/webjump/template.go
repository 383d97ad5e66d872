package webjump

import (
	"strings"
)

const placeholder = "%s"

const upperhex = "0123456789ABCDEF"

func compileTemplate(template string) Handler {
	b := strings.Index(template, placeholder)
	if b == -1 {
		return func(string) string {
			return template
		}
	}
	head, tail := template[:b], template[b+len(placeholder):]
	return func(arg string) string {
		return head + EncodeComponent(arg) + tail
	}
}

// EncodeComponent percent-encodes s the way browsers encode a URI component:
// everything except ASCII letters, digits and -_.!~*'() is escaped as UTF-8
// bytes.
func EncodeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// trimURLPath drops everything after the authority of url, keeping
// "scheme://host/". URLs without an authority yield "".
func trimURLPath(url string) string {
	i := strings.Index(url, "://")
	if i <= 0 {
		return ""
	}
	rest := url[i+3:]
	if end := strings.IndexAny(rest, "/?#"); end != -1 {
		rest = rest[:end]
	}
	if rest == "" {
		return ""
	}
	return url[:i+3] + rest + "/"
}
