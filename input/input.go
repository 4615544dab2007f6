package input

// Request is everything needed to issue one JSON request.
type Request struct {
	Method Method
	URL    string
	Header Header
	Entity Entity
	Auth   Auth
}

type Method string

const (
	MethodPost Method = "POST"
	MethodPut  Method = "PUT"
)

type Field struct {
	Name  string
	Value string
}
