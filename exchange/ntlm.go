package exchange

import (
	"encoding/base64"
	"net/http"

	"github.com/Azure/go-ntlmssp"
	"github.com/nojima/jsonhttp/input"
	"github.com/pkg/errors"
)

// negotiateNTLM runs the NEGOTIATE / CHALLENGE / AUTHENTICATE exchange for
// r. Both legs reuse the connection of the first 401, which must already be
// drained.
func negotiateNTLM(client *http.Client, r *http.Request, scheme string, creds *input.Credentials) (*http.Response, error) {
	negotiateMessage, err := ntlmssp.NewNegotiateMessage(creds.Domain, creds.Workstation)
	if err != nil {
		return nil, errors.Wrap(err, "building NTLM negotiate message")
	}
	resp, err := sendNTLMMessage(client, r, scheme, negotiateMessage)
	if err != nil {
		return nil, errors.Wrap(err, "sending NTLM negotiate message")
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	c := findChallenge(parseChallenges(resp.Header.Values("WWW-Authenticate")), scheme)
	if c == nil || c.token == "" {
		// The server rejected the negotiation outright
		return resp, nil
	}
	drain(resp)

	challengeMessage, err := base64.StdEncoding.DecodeString(c.token)
	if err != nil {
		return nil, errors.Wrap(err, "decoding NTLM challenge message")
	}
	authenticateMessage, err := ntlmssp.ProcessChallenge(challengeMessage, creds.Username, creds.Password, true)
	if err != nil {
		return nil, errors.Wrap(err, "processing NTLM challenge message")
	}
	resp, err = sendNTLMMessage(client, r, scheme, authenticateMessage)
	if err != nil {
		return nil, errors.Wrap(err, "sending NTLM authenticate message")
	}
	return resp, nil
}

func sendNTLMMessage(client *http.Client, r *http.Request, scheme string, message []byte) (*http.Response, error) {
	req, err := replay(r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", scheme+" "+base64.StdEncoding.EncodeToString(message))
	return client.Do(req)
}
