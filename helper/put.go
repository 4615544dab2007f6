package helper

import (
	"context"

	"github.com/nojima/jsonhttp/input"
)

// JSONPut sends a JSON message with PUT. Besides basic credentials it can
// offer NTLM credentials and extra request headers.
type JSONPut struct {
	bag
}

func NewJSONPut() *JSONPut {
	p := &JSONPut{}
	p.request.Method = input.MethodPut
	return p
}

func (p *JSONPut) SetCharset(charset string) {
	p.request.Entity.Charset = charset
}

func (p *JSONPut) SetAuthWorkstation(authWorkstation string) {
	p.request.Auth.Workstation = authWorkstation
}

// SetAuthDomain switches the credentials to NTLM.
func (p *JSONPut) SetAuthDomain(authDomain string) {
	p.request.Auth.Domain = authDomain
}

// AddRequestHeader appends a header, keeping any with the same name.
func (p *JSONPut) AddRequestHeader(name, value string) {
	p.request.Header.Add(name, value)
}

// SetRequestHeader replaces all headers with the same name.
func (p *JSONPut) SetRequestHeader(name, value string) {
	p.request.Header.Set(name, value)
}

// Execute sends the request. It never returns an error; check
// ExceptionWasThrown afterwards. Calling it again overwrites every result.
func (p *JSONPut) Execute() {
	p.ExecuteContext(context.Background())
}

func (p *JSONPut) ExecuteContext(ctx context.Context) {
	p.request.Method = input.MethodPut
	p.execute(ctx)
}
