package output

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/nojima/jsonhttp/exchange"
)

type Printer interface {
	PrintRequestLine(req *http.Request) error
	PrintStatusLine(proto string, status string, statusCode int) error
	PrintHeader(header http.Header) error
	PrintBody(body io.Reader, contentType string) error
}

func NewPrinter(writer io.Writer, options *Options) Printer {
	if options.EnableColor {
		return NewPrettyPrinter(PrettyPrinterConfig{Writer: writer, EnableColor: true})
	}
	return NewPlainPrinter(writer)
}

// Request is the outgoing side of an exchange as it should be printed.
type Request struct {
	HTTPRequest *http.Request
	Body        string
}

func PrintRequest(p Printer, req *Request, options *Options) error {
	if req == nil || req.HTTPRequest == nil {
		return nil
	}
	if options.PrintRequestHeader {
		if err := p.PrintRequestLine(req.HTTPRequest); err != nil {
			return err
		}
		header := req.HTTPRequest.Header.Clone()
		header.Set("Host", req.HTTPRequest.Host)
		if err := p.PrintHeader(header); err != nil {
			return err
		}
	}
	if options.PrintRequestBody && req.Body != "" {
		if err := p.PrintBody(stringReader(req.Body), req.HTTPRequest.Header.Get("Content-Type")); err != nil {
			return err
		}
	}
	return nil
}

func PrintResponse(p Printer, resp *exchange.Response, options *Options) error {
	if options.PrintResponseHeader {
		status := fmt.Sprintf("%d %s", resp.StatusCode, resp.Reason)
		if err := p.PrintStatusLine(resp.Proto, status, resp.StatusCode); err != nil {
			return err
		}
		if err := p.PrintHeader(resp.Header); err != nil {
			return err
		}
	}
	if options.PrintResponseBody {
		if err := p.PrintBody(stringReader(resp.Body), resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}
	return nil
}

// PrintSummary writes the one-line footer shown in verbose mode.
func PrintSummary(w io.Writer, resp *exchange.Response, elapsed time.Duration) {
	fmt.Fprintf(w, "Received %s in %s\n",
		bytefmt.ByteSize(uint64(len(resp.Body))),
		elapsed.Round(time.Millisecond))
}
