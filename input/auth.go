package input

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	AnyHost  = ""
	AnyPort  = -1
	AnyRealm = ""
)

// Auth holds credentials and the scope they are offered for.
// Empty Host, Port and Realm mean any.
type Auth struct {
	Host        string
	Port        string
	Realm       string
	Username    string
	Password    string
	Workstation string
	Domain      string
}

// Scope is the (host, port, realm) triple a server challenge must match.
type Scope struct {
	Host  string
	Port  int
	Realm string
}

type CredentialsType int

const (
	BasicCredentials CredentialsType = iota
	NTLMCredentials
)

type Credentials struct {
	Type        CredentialsType
	Username    string
	Password    string
	Workstation string
	Domain      string
}

// Principal is the user name presented to schemes that only know a
// single name, such as Basic.
func (c *Credentials) Principal() string {
	if c.Type == NTLMCredentials {
		return c.Domain + `\` + c.Username
	}
	return c.Username
}

// Enabled reports whether credentials should be offered at all.
func (a *Auth) Enabled() bool {
	return a.Username != "" && a.Password != ""
}

func (a *Auth) Scope() (Scope, error) {
	scope := Scope{Host: AnyHost, Port: AnyPort, Realm: AnyRealm}
	if a.Host != "" {
		scope.Host = a.Host
	}
	if a.Port != "" {
		port, err := decodePort(a.Port)
		if err != nil {
			return Scope{}, err
		}
		scope.Port = port
	}
	if a.Realm != "" {
		scope.Realm = a.Realm
	}
	return scope, nil
}

// Credentials returns NTLM credentials when a domain is configured and
// basic ones otherwise.
func (a *Auth) Credentials() *Credentials {
	if a.Domain != "" {
		return &Credentials{
			Type:        NTLMCredentials,
			Username:    a.Username,
			Password:    a.Password,
			Workstation: a.Workstation,
			Domain:      a.Domain,
		}
	}
	return &Credentials{
		Type:     BasicCredentials,
		Username: a.Username,
		Password: a.Password,
	}
}

// decodePort accepts decimal, 0x/0X/# hexadecimal and leading-zero octal.
// Binary and 0o prefixes are rejected.
func decodePort(s string) (int, error) {
	v := strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+") {
		sign, v = v[:1], v[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(v, "0x"), strings.HasPrefix(v, "0X"):
		base, v = 16, v[2:]
	case strings.HasPrefix(v, "#"):
		base, v = 16, v[1:]
	case len(v) > 1 && v[0] == '0':
		base, v = 8, v[1:]
	}
	if strings.ContainsAny(v, "_+-") || v == "" {
		return 0, errors.Errorf("invalid auth port: %q", s)
	}
	n, err := strconv.ParseInt(sign+v, base, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid auth port: %q", s)
	}
	return int(n), nil
}

func (s Scope) String() string {
	host := s.Host
	if host == AnyHost {
		host = "<any host>"
	}
	port := "<any port>"
	if s.Port != AnyPort {
		port = strconv.Itoa(s.Port)
	}
	realm := s.Realm
	if realm == AnyRealm {
		realm = "<any realm>"
	}
	return realm + "@" + host + ":" + port
}
