package input

import (
	"reflect"
	"testing"
)

func TestHeader_AddAndSet(t *testing.T) {
	// Setup
	var h Header
	h.Add("Accept", "application/json")
	h.Add("X-Trace", "a")
	h.Add("x-trace", "b")
	h.Add("X-Other", "c")

	// Exercise
	h.Set("X-Trace", "z")

	// Verify
	expected := []Field{
		{Name: "Accept", Value: "application/json"},
		{Name: "X-Trace", Value: "z"},
		{Name: "X-Other", Value: "c"},
	}
	if !reflect.DeepEqual(h.Fields(), expected) {
		t.Errorf("unexpected fields: expected=%+v, actual=%+v", expected, h.Fields())
	}
}

func TestHeader_SetAppendsWhenMissing(t *testing.T) {
	var h Header
	h.Add("Accept", "*/*")
	h.Set("X-New", "1")

	if h.Len() != 2 {
		t.Fatalf("unexpected length: %d", h.Len())
	}
	if got := h.Values("x-new"); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("unexpected values: %v", got)
	}
	if !h.Has("ACCEPT") {
		t.Errorf("Has should match case-insensitively")
	}
}

func TestHeader_FieldsIsCopy(t *testing.T) {
	var h Header
	h.Add("A", "1")
	fields := h.Fields()
	fields[0].Value = "changed"
	if h.Values("A")[0] != "1" {
		t.Errorf("Fields must not expose internal storage")
	}
}

func TestEntity_DeclaredType(t *testing.T) {
	testCases := []struct {
		title         string
		entity        Entity
		expected      string
		shouldBeError bool
	}{
		{
			title:    "Content type and charset",
			entity:   Entity{ContentType: "application/json", Charset: "UTF-8"},
			expected: "application/json; charset=UTF-8",
		},
		{
			title:    "Charset alias is declared by its canonical name",
			entity:   Entity{ContentType: "application/json", Charset: "utf8"},
			expected: "application/json; charset=UTF-8",
		},
		{
			title:    "Latin-1 alias",
			entity:   Entity{ContentType: "text/plain", Charset: "latin1"},
			expected: "text/plain; charset=ISO-8859-1",
		},
		{
			title:    "Content type only",
			entity:   Entity{ContentType: "application/json"},
			expected: "application/json",
		},
		{
			title:    "Neither",
			entity:   Entity{},
			expected: DefaultEntityType,
		},
		{
			title:    "Charset without content type",
			entity:   Entity{Charset: "UTF-8"},
			expected: DefaultEntityType,
		},
		{
			title:    "Content type is lower-cased",
			entity:   Entity{ContentType: "Application/JSON"},
			expected: "application/json",
		},
		{
			title:         "Reserved character in content type",
			entity:        Entity{ContentType: "application/json; charset=UTF-8"},
			shouldBeError: true,
		},
		{
			title:         "Unknown charset",
			entity:        Entity{ContentType: "application/json", Charset: "no-such-charset"},
			shouldBeError: true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := tt.entity.DeclaredType()
			if (err != nil) != tt.shouldBeError {
				t.Fatalf("unexpected error: shouldBeError=%v, err=%v", tt.shouldBeError, err)
			}
			if actual != tt.expected {
				t.Errorf("unexpected type: expected=%s, actual=%s", tt.expected, actual)
			}
		})
	}
}

func TestEntity_Bytes(t *testing.T) {
	testCases := []struct {
		title    string
		entity   Entity
		expected []byte
	}{
		{
			title:    "UTF-8",
			entity:   Entity{Text: "café", ContentType: "application/json", Charset: "UTF-8"},
			expected: []byte("caf\xc3\xa9"),
		},
		{
			title:    "Default is ISO-8859-1",
			entity:   Entity{Text: "café", ContentType: "application/json"},
			expected: []byte("caf\xe9"),
		},
		{
			title:    "ASCII passes through",
			entity:   Entity{Text: `{"a":1}`},
			expected: []byte(`{"a":1}`),
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := tt.entity.Bytes()
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("unexpected bytes: expected=%q, actual=%q", tt.expected, actual)
			}
		})
	}
}

func TestAuth_Scope(t *testing.T) {
	testCases := []struct {
		title         string
		auth          Auth
		expected      Scope
		shouldBeError bool
	}{
		{
			title:    "Defaults to any",
			auth:     Auth{Username: "alice", Password: "secret"},
			expected: Scope{Host: AnyHost, Port: AnyPort, Realm: AnyRealm},
		},
		{
			title:    "Explicit scope",
			auth:     Auth{Host: "api.example.com", Port: "8443", Realm: "api"},
			expected: Scope{Host: "api.example.com", Port: 8443, Realm: "api"},
		},
		{
			title:    "Hexadecimal port",
			auth:     Auth{Port: "0x1F90"},
			expected: Scope{Host: AnyHost, Port: 8080, Realm: AnyRealm},
		},
		{
			title:    "Hash hexadecimal port",
			auth:     Auth{Port: "#50"},
			expected: Scope{Host: AnyHost, Port: 80, Realm: AnyRealm},
		},
		{
			title:    "Octal port",
			auth:     Auth{Port: "0120"},
			expected: Scope{Host: AnyHost, Port: 80, Realm: AnyRealm},
		},
		{
			title:         "Invalid port",
			auth:          Auth{Port: "http"},
			shouldBeError: true,
		},
		{
			title:         "Binary prefix is not a port",
			auth:          Auth{Port: "0b101"},
			shouldBeError: true,
		},
		{
			title:         "0o prefix is not a port",
			auth:          Auth{Port: "0o17"},
			shouldBeError: true,
		},
		{
			title:    "Zero",
			auth:     Auth{Port: "0"},
			expected: Scope{Host: AnyHost, Port: 0, Realm: AnyRealm},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := tt.auth.Scope()
			if (err != nil) != tt.shouldBeError {
				t.Fatalf("unexpected error: shouldBeError=%v, err=%v", tt.shouldBeError, err)
			}
			if err != nil {
				return
			}
			if actual != tt.expected {
				t.Errorf("unexpected scope: expected=%+v, actual=%+v", tt.expected, actual)
			}
		})
	}
}

func TestAuth_Credentials(t *testing.T) {
	basic := (&Auth{Username: "alice", Password: "secret", Workstation: "WS01"}).Credentials()
	if basic.Type != BasicCredentials {
		t.Errorf("expected basic credentials without domain: %+v", basic)
	}
	if basic.Principal() != "alice" {
		t.Errorf("unexpected principal: %s", basic.Principal())
	}

	ntlm := (&Auth{Username: "alice", Password: "secret", Workstation: "WS01", Domain: "CORP"}).Credentials()
	expected := &Credentials{
		Type:        NTLMCredentials,
		Username:    "alice",
		Password:    "secret",
		Workstation: "WS01",
		Domain:      "CORP",
	}
	if !reflect.DeepEqual(ntlm, expected) {
		t.Errorf("unexpected credentials: expected=%+v, actual=%+v", expected, ntlm)
	}
	if ntlm.Principal() != `CORP\alice` {
		t.Errorf("unexpected principal: %s", ntlm.Principal())
	}
}

func TestAuth_Enabled(t *testing.T) {
	if (&Auth{Username: "alice"}).Enabled() {
		t.Errorf("auth without password should be disabled")
	}
	if !(&Auth{Username: "alice", Password: "secret"}).Enabled() {
		t.Errorf("auth with username and password should be enabled")
	}
}
