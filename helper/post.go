package helper

import (
	"context"

	"github.com/nojima/jsonhttp/input"
)

// JSONPost sends a JSON message with POST, optionally with basic
// credentials.
type JSONPost struct {
	bag
}

func NewJSONPost() *JSONPost {
	p := &JSONPost{}
	p.request.Method = input.MethodPost
	return p
}

// Execute sends the request. It never returns an error; check
// ExceptionWasThrown afterwards. Calling it again overwrites every result.
func (p *JSONPost) Execute() {
	p.ExecuteContext(context.Background())
}

func (p *JSONPost) ExecuteContext(ctx context.Context) {
	p.request.Method = input.MethodPost
	p.execute(ctx)
}
