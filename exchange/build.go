package exchange

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nojima/jsonhttp/input"
	"github.com/nojima/jsonhttp/version"
	"github.com/pkg/errors"
)

// BuildHTTPRequest turns a Request into an *http.Request whose body can be
// replayed for authentication round trips.
func BuildHTTPRequest(in *input.Request) (*http.Request, error) {
	if in.Method == "" {
		return nil, errors.New("HTTP method is required")
	}
	u, err := buildURL(in.URL)
	if err != nil {
		return nil, err
	}

	contentType, err := in.Entity.DeclaredType()
	if err != nil {
		return nil, errors.Wrap(err, "building request entity")
	}
	body, err := in.Entity.Bytes()
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequest(string(in.Method), u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "creating HTTP request")
	}
	r.Header = buildHTTPHeader(in)

	// An explicit Content-Type header wins over the entity's type
	if r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", contentType)
	}
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", fmt.Sprintf("jsonhttp/%s", version.Current()))
	}
	if host := r.Header.Get("Host"); host != "" {
		r.Host = host
	}
	return r, nil
}

func buildURL(rawurl string) (*url.URL, error) {
	if rawurl == "" {
		return nil, errors.New("service URL is required")
	}
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, errors.Wrap(err, "parsing service URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("unsupported URL scheme '%s': %s", u.Scheme, rawurl)
	}
	if u.Hostname() == "" {
		return nil, errors.Errorf("URL does not specify a valid host name: %s", rawurl)
	}
	return u, nil
}

func buildHTTPHeader(in *input.Request) http.Header {
	header := make(http.Header)
	for _, field := range in.Header.Fields() {
		header.Add(field.Name, field.Value)
	}
	return header
}
