package article

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const latin1 = "iso-8859-1"

// declaredCharset returns the lowercased charset the server declared, with
// the legacy HTTP default of ISO-8859-1 for text types that declare none.
// That default is what the original transport assumed, and the correction
// heuristic in decodeBody depends on it.
func declaredCharset(mediaType string, params map[string]string) string {
	if cs, ok := params["charset"]; ok && cs != "" {
		return strings.ToLower(cs)
	}
	if strings.HasPrefix(mediaType, "text/") {
		return latin1
	}
	return "utf-8"
}

// decodeBody compensates for servers that mis-declare their encoding. The
// body is decoded under the declared charset first; if the decoded text
// literally mentions iso-8859-1 the body really is Latin-1 and is forced to
// it, otherwise a Latin-1 declaration is assumed wrong and the body is
// treated as UTF-8.
func decodeBody(raw []byte, declared string) string {
	var text string
	if isLatin1(declared) {
		text = decodeLatin1(raw)
	} else {
		text = string(raw)
	}

	switch {
	case strings.Contains(strings.ToLower(text), latin1):
		return decodeLatin1(raw)
	case isLatin1(declared):
		return string(raw)
	default:
		return text
	}
}

func isLatin1(charset string) bool {
	switch charset {
	case latin1, "latin-1", "latin1", "iso8859-1":
		return true
	default:
		return false
	}
}

func decodeLatin1(raw []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Latin-1 maps every byte; decoding cannot realistically fail, but
		// fall back to the raw bytes rather than drop the article.
		return string(raw)
	}
	return string(decoded)
}
