package exchange

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Options struct {
	Timeout         time.Duration
	FollowRedirects bool
	SkipVerify      bool

	// Transport replaces the default transport. An *http.Transport is
	// cloned and pinned to TLS 1.2 like the default one.
	Transport http.RoundTripper
	Logger    *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
