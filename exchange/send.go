package exchange

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nojima/jsonhttp/input"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Reason     string
	Proto      string
	Header     http.Header
	Body       string
}

// Send performs one request and reads the whole response. The client and
// its connections live only for the duration of the call.
func Send(ctx context.Context, in *input.Request, options *Options) (*Response, error) {
	logger := options.logger()

	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, errors.Wrap(err, "building HTTP client")
	}
	defer client.CloseIdleConnections()

	var auth *authenticator
	if in.Auth.Enabled() {
		if auth, err = newAuthenticator(client, &in.Auth, logger); err != nil {
			return nil, errors.Wrap(err, "building credentials")
		}
	}

	r, err := BuildHTTPRequest(in)
	if err != nil {
		return nil, errors.Wrap(err, "building HTTP request")
	}
	r = r.WithContext(ctx)

	logger.Debug("sending request",
		zap.String("method", r.Method), zap.String("url", r.URL.Redacted()))
	resp, err := client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}
	if auth != nil {
		if resp, err = auth.respond(r, resp); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	text, err := decodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	logger.Debug("received response",
		zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))

	return &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Proto:      resp.Proto,
		Header:     resp.Header,
		Body:       text,
	}, nil
}

// reasonPhrase extracts the phrase the server sent after the status code.
func reasonPhrase(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
