package exchange

import (
	"crypto/tls"
	"net/http"
)

func BuildHTTPClient(options *Options) (*http.Client, error) {
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		// Do not follow redirects
		return http.ErrUseLastResponse
	}
	if options.FollowRedirects {
		checkRedirect = nil
	}

	client := http.Client{
		CheckRedirect: checkRedirect,
		Timeout:       options.Timeout,
	}

	var transp http.RoundTripper
	if options.Transport == nil {
		transp = http.DefaultTransport.(*http.Transport).Clone()
	} else {
		transp = options.Transport
	}
	if httpTransport, ok := transp.(*http.Transport); ok {
		if options.Transport != nil {
			httpTransport = httpTransport.Clone()
			transp = httpTransport
		}
		httpTransport.TLSClientConfig = buildTLSConfig(httpTransport.TLSClientConfig, options.SkipVerify)
		// NTLM authenticates a connection, so stay on HTTP/1.1
		httpTransport.ForceAttemptHTTP2 = false
		httpTransport.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
	}

	client.Transport = transp
	return &client, nil
}

// buildTLSConfig restricts base to TLS 1.2 only.
func buildTLSConfig(base *tls.Config, skipVerify bool) *tls.Config {
	var config *tls.Config
	if base == nil {
		config = &tls.Config{}
	} else {
		config = base.Clone()
	}
	config.MinVersion = tls.VersionTLS12
	config.MaxVersion = tls.VersionTLS12
	config.NextProtos = []string{"http/1.1"}
	if skipVerify {
		config.InsecureSkipVerify = true
	}
	return config
}
