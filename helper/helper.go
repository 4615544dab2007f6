// Package helper exposes JSON POST and PUT requests as property bags for
// hosts that can only set fields, call a method and read fields back.
package helper

import (
	"context"
	"strconv"

	"github.com/nojima/jsonhttp/exchange"
	"github.com/nojima/jsonhttp/input"
	"github.com/nojima/jsonhttp/trace"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Do sends req and returns the response or the error that prevented one.
// A panic during the exchange is returned as an error.
func Do(ctx context.Context, req *input.Request, options *exchange.Options) (resp *exchange.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = errors.Errorf("panic during %s request: %v", req.Method, r)
		}
	}()
	return exchange.Send(ctx, req, options)
}

// bag holds the configuration and result shared by JSONPost and JSONPut.
type bag struct {
	// Options tunes the transport. The zero value is what hosts get.
	Options exchange.Options

	request input.Request

	serviceResponse string
	statusCode      int
	statusReason    string

	exceptionWasThrown bool
	thrownException    error
}

func (b *bag) SetServiceURL(serviceURL string) {
	b.request.URL = serviceURL
}

func (b *bag) SetContentType(contentType string) {
	b.request.Entity.ContentType = contentType
}

func (b *bag) SetJSONMessage(jsonMessage string) {
	b.request.Entity.Text = jsonMessage
}

func (b *bag) SetAuthHost(authHost string) {
	b.request.Auth.Host = authHost
}

func (b *bag) SetAuthPort(authPort string) {
	b.request.Auth.Port = authPort
}

func (b *bag) SetAuthRealm(authRealm string) {
	b.request.Auth.Realm = authRealm
}

func (b *bag) SetAuthUsername(authUsername string) {
	b.request.Auth.Username = authUsername
}

func (b *bag) SetAuthPassword(authPassword string) {
	b.request.Auth.Password = authPassword
}

func (b *bag) execute(ctx context.Context) {
	logger := b.Options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resp, err := Do(ctx, &b.request, &b.Options)
	if err != nil {
		b.serviceResponse = ""
		b.statusCode = 0
		b.statusReason = ""
		b.exceptionWasThrown = true
		b.thrownException = err
		logger.Debug("request failed",
			zap.String("method", string(b.request.Method)), zap.String("url", b.request.URL), zap.Error(err))
		return
	}

	b.serviceResponse = resp.Body
	b.statusCode = resp.StatusCode
	b.statusReason = resp.Reason
	b.exceptionWasThrown = false
	b.thrownException = nil
	logger.Debug("request succeeded",
		zap.String("method", string(b.request.Method)), zap.String("url", b.request.URL), zap.Int("status", resp.StatusCode))
}

func (b *bag) ServiceResponse() string {
	return b.serviceResponse
}

// StatusCode is "0" until a response has been received.
func (b *bag) StatusCode() string {
	return strconv.Itoa(b.statusCode)
}

func (b *bag) StatusReason() string {
	return b.statusReason
}

func (b *bag) ExceptionWasThrown() bool {
	return b.exceptionWasThrown
}

func (b *bag) ThrownException() error {
	return b.thrownException
}

// ExceptionInfo describes the last error and all of its causes, or returns
// "" when the last execution succeeded.
func (b *bag) ExceptionInfo() string {
	return trace.Format(b.thrownException)
}
