package input

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEntityType is declared for an entity that has neither content type
// nor charset.
const DefaultEntityType = "text/plain; charset=ISO-8859-1"

// Entity is the text body of a request.
type Entity struct {
	Text        string
	ContentType string
	Charset     string
}

// DeclaredType returns the Content-Type value announced for the entity.
// A charset without a content type is ignored.
func (e Entity) DeclaredType() (string, error) {
	if e.ContentType == "" {
		return DefaultEntityType, nil
	}
	mimeType, err := normalizeMimeType(e.ContentType)
	if err != nil {
		return "", err
	}
	if e.Charset == "" {
		return mimeType, nil
	}
	_, charset, err := lookupCharset(e.Charset)
	if err != nil {
		return "", err
	}
	return mimeType + "; charset=" + charset, nil
}

// Bytes encodes the entity text in its charset. Without an explicit charset
// the text is encoded as ISO-8859-1; characters that cannot be represented
// are substituted.
func (e Entity) Bytes() ([]byte, error) {
	enc := encoding.Encoding(charmap.ISO8859_1)
	if e.ContentType != "" && e.Charset != "" {
		var err error
		if enc, _, err = lookupCharset(e.Charset); err != nil {
			return nil, err
		}
	}
	b, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(e.Text))
	if err != nil {
		return nil, errors.Wrap(err, "encoding request entity")
	}
	return b, nil
}

func normalizeMimeType(s string) (string, error) {
	mimeType := strings.TrimSpace(s)
	if mimeType == "" {
		return "", errors.New("MIME type may not be blank")
	}
	if strings.ContainsAny(mimeType, `",;`) {
		return "", errors.Errorf("MIME type may not contain reserved characters: %s", s)
	}
	return strings.ToLower(mimeType), nil
}

// lookupCharset resolves an IANA name or alias, then a WHATWG label, and
// returns the encoding with the canonical name to declare for it.
func lookupCharset(name string) (encoding.Encoding, string, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		if enc, err = htmlindex.Get(name); err != nil {
			return nil, "", errors.Wrapf(err, "unsupported charset '%s'", name)
		}
	}
	if canonical, err := ianaindex.MIME.Name(enc); err == nil {
		return enc, canonical, nil
	}
	if canonical, err := ianaindex.IANA.Name(enc); err == nil {
		return enc, canonical, nil
	}
	return enc, name, nil
}
