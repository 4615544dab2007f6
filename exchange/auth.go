package exchange

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nojima/jsonhttp/input"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// authenticator answers a 401 response with the configured credentials.
// Credentials are never sent before the server asks for them.
type authenticator struct {
	client *http.Client
	scope  input.Scope
	creds  *input.Credentials
	logger *zap.Logger
}

func newAuthenticator(client *http.Client, auth *input.Auth, logger *zap.Logger) (*authenticator, error) {
	scope, err := auth.Scope()
	if err != nil {
		return nil, err
	}
	return &authenticator{
		client: client,
		scope:  scope,
		creds:  auth.Credentials(),
		logger: logger,
	}, nil
}

// respond returns the response to use in place of resp. When no challenge
// matches the credentials, resp itself is returned untouched.
func (a *authenticator) respond(r *http.Request, resp *http.Response) (*http.Response, error) {
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	challenges := parseChallenges(resp.Header.Values("WWW-Authenticate"))

	if a.creds.Type == input.NTLMCredentials {
		for _, scheme := range []string{"NTLM", "Negotiate"} {
			c := findChallenge(challenges, scheme)
			if c == nil || !a.matches(r.URL, "") {
				continue
			}
			a.logger.Debug("answering challenge",
				zap.String("scheme", c.scheme), zap.Stringer("scope", a.scope))
			drain(resp)
			return negotiateNTLM(a.client, r, c.scheme, a.creds)
		}
	}

	c := findChallenge(challenges, "Basic")
	if c == nil || !a.matches(r.URL, c.realm()) {
		a.logger.Debug("no challenge matches credentials",
			zap.Stringer("scope", a.scope), zap.Strings("challenges", resp.Header.Values("WWW-Authenticate")))
		return resp, nil
	}
	a.logger.Debug("answering challenge",
		zap.String("scheme", c.scheme), zap.String("realm", c.realm()), zap.Stringer("scope", a.scope))
	drain(resp)

	req, err := replay(r)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(a.creds.Principal(), a.creds.Password)
	resp, err = a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sending authenticated HTTP request")
	}
	return resp, nil
}

// matches reports whether a challenge from u for realm is within the
// credential scope. A challenge without a realm matches any configured realm.
func (a *authenticator) matches(u *url.URL, realm string) bool {
	if a.scope.Host != input.AnyHost && !strings.EqualFold(a.scope.Host, u.Hostname()) {
		return false
	}
	if a.scope.Port != input.AnyPort && a.scope.Port != effectivePort(u) {
		return false
	}
	if a.scope.Realm != input.AnyRealm && realm != "" && a.scope.Realm != realm {
		return false
	}
	return true
}

func effectivePort(u *url.URL) int {
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	if u.Scheme == "https" {
		return 443
	}
	return 80
}

// replay clones r with a fresh copy of its body.
func replay(r *http.Request) (*http.Request, error) {
	req := r.Clone(r.Context())
	if r.GetBody != nil {
		body, err := r.GetBody()
		if err != nil {
			return nil, errors.Wrap(err, "rewinding request body")
		}
		req.Body = body
	}
	return req, nil
}

// drain consumes and closes the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
