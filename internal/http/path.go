package http

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodePathSegment percent-encodes every byte that is not an ASCII
// letter or digit. Unlike url.PathEscape it also encodes characters
// such as '.', '-' and '~', and it encodes '/' to %2F, so a virtual
// host named "/" becomes a single path segment.
func EncodePathSegment(segment string) string {
	var builder strings.Builder

	for i := 0; i < len(segment); i++ {
		b := segment[i]
		if ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9') {
			builder.WriteByte(b)

			continue
		}

		builder.WriteByte('%')
		builder.WriteByte(upperhex[b>>4])
		builder.WriteByte(upperhex[b&0x0F])
	}

	return builder.String()
}

// Path joins the given values into a relative URL path, percent-encoding
// each one as a single segment. Structural slashes are inserted only
// between segments, never taken from the values themselves.
func Path(segments ...string) string {
	encoded := make([]string, 0, len(segments))
	for _, segment := range segments {
		encoded = append(encoded, EncodePathSegment(segment))
	}

	return strings.Join(encoded, "/")
}
