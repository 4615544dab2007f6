package input

import (
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	reMethod          = regexp.MustCompile(`^[a-zA-Z]+$`)
	reHeaderFieldName = regexp.MustCompile("^[-!#$%&'*+.^_|~a-zA-Z0-9]+$")
	reScheme          = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)
)

type itemType int

const (
	unknownItem itemType = iota
	addHeaderItem
	setHeaderItem
	messageFileItem
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

type state struct {
	messageSet bool
}

// ParseArgs parses "[METHOD] URL [ITEM ...]" into a Request.
// Entity and auth settings other than the message are left for the caller.
func ParseArgs(args []string, stdin io.Reader, options *Options) (*Request, error) {
	var argMethod string
	var argURL string
	var argItems []string
	switch len(args) {
	case 0:
		return nil, newUsageError("URL is required")
	case 1:
		argURL = args[0]
	default:
		if reMethod.MatchString(args[0]) {
			argMethod = args[0]
			argURL = args[1]
			argItems = args[2:]
		} else {
			argURL = args[0]
			argItems = args[1:]
		}
	}

	req := Request{Method: options.Method}
	if req.Method == "" {
		req.Method = MethodPost
	}
	if argMethod != "" {
		method, err := parseMethod(argMethod)
		if err != nil {
			return nil, err
		}
		req.Method = method
	}

	u, err := parseURL(argURL)
	if err != nil {
		return nil, err
	}
	req.URL = u.String()

	state := state{}
	if options.JSONMessage != "" {
		req.Entity.Text = options.JSONMessage
		state.messageSet = true
	}
	for _, arg := range argItems {
		if err := parseItem(arg, stdin, &state, &req); err != nil {
			return nil, err
		}
	}
	if options.ReadStdin && !state.messageSet {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stdin")
		}
		req.Entity.Text = string(b)
	}
	return &req, nil
}

func parseMethod(s string) (Method, error) {
	method := Method(strings.ToUpper(s))
	switch method {
	case MethodPost, MethodPut:
		return method, nil
	default:
		return "", newUsageError("METHOD must be POST or PUT: " + s)
	}
}

func parseURL(s string) (*url.URL, error) {
	defaultScheme := "http"
	defaultHost := "localhost"

	// ex) :8080/hello or /hello
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "/") {
		s = defaultHost + s
	}

	// ex) example.com/hello
	if !reScheme.MatchString(s) {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, newUsageError("Invalid URL: " + s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func parseItem(s string, stdin io.Reader, state *state, req *Request) error {
	itemType, name, value := splitItem(s)
	switch itemType {
	case addHeaderItem, setHeaderItem:
		if !isValidHeaderFieldName(name) {
			return errors.Errorf("invalid header field name: %s", name)
		}
		if itemType == setHeaderItem {
			req.Header.Set(name, value)
		} else {
			req.Header.Add(name, value)
		}
	case messageFileItem:
		if state.messageSet {
			return errors.New("JSON message specified more than once")
		}
		text, err := readMessage(value, stdin)
		if err != nil {
			return err
		}
		req.Entity.Text = text
		state.messageSet = true
	default:
		return newUsageError("unknown request item: " + s)
	}
	return nil
}

func splitItem(s string) (itemType, string, string) {
	if strings.HasPrefix(s, "@") {
		return messageFileItem, "", s[1:]
	}
	i := strings.Index(s, ":")
	if i <= 0 {
		return unknownItem, "", ""
	}
	if i+1 < len(s) && s[i+1] == '=' {
		return setHeaderItem, s[:i], s[i+2:]
	}
	return addHeaderItem, s[:i], s[i+1:]
}

func isValidHeaderFieldName(s string) bool {
	return reHeaderFieldName.MatchString(s)
}

func readMessage(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading JSON message from stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading JSON message from '%s'", path)
	}
	return string(b), nil
}
