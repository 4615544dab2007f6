package exchange

import (
	"mime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// decodeBody converts a response body to text. The charset comes from the
// Content-Type; JSON defaults to UTF-8 and everything else to ISO-8859-1.
func decodeBody(body []byte, contentType string) (string, error) {
	enc := responseEncoding(contentType)
	b, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", errors.Wrap(err, "decoding response body")
	}
	return string(b), nil
}

func responseEncoding(contentType string) encoding.Encoding {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return charmap.ISO8859_1
	}
	if name := params["charset"]; name != "" {
		if enc, err := htmlindex.Get(name); err == nil {
			return enc
		}
	}
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		return unicode.UTF8
	}
	return charmap.ISO8859_1
}
