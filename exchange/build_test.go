package exchange

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"testing"

	"github.com/nojima/jsonhttp/input"
	"github.com/nojima/jsonhttp/version"
)

func readAll(t *testing.T, reader io.Reader) string {
	b, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read all: %s", err)
	}
	return string(b)
}

func TestBuildHTTPRequest(t *testing.T) {
	// Setup
	in := &input.Request{
		Method: input.MethodPut,
		URL:    "https://localhost:4000/foo?q=1",
		Entity: input.Entity{
			Text:        `{"hoge": "fuga"}`,
			ContentType: "application/json",
			Charset:     "UTF-8",
		},
	}
	in.Header.Add("X-Foo", "fizz buzz")
	in.Header.Add("Host", "example.com:8080")

	// Exercise
	actual, err := BuildHTTPRequest(in)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if actual.Method != "PUT" {
		t.Errorf("unexpected method: expected=%v, actual=%v", "PUT", actual.Method)
	}
	if actual.URL.String() != "https://localhost:4000/foo?q=1" {
		t.Errorf("unexpected URL: %v", actual.URL)
	}
	expectedHeader := http.Header{
		"X-Foo":        []string{"fizz buzz"},
		"Content-Type": []string{"application/json; charset=UTF-8"},
		"User-Agent":   []string{fmt.Sprintf("jsonhttp/%s", version.Current())},
		"Host":         []string{"example.com:8080"},
	}
	if !reflect.DeepEqual(expectedHeader, actual.Header) {
		t.Errorf("unexpected header: expected=%v, actual=%v", expectedHeader, actual.Header)
	}
	if actual.Host != "example.com:8080" {
		t.Errorf("unexpected host: %v", actual.Host)
	}
	if body := readAll(t, actual.Body); body != `{"hoge": "fuga"}` {
		t.Errorf("unexpected body: %s", body)
	}
	if actual.GetBody == nil {
		t.Errorf("request body must be replayable")
	}
}

func TestBuildHTTPRequest_ContentType(t *testing.T) {
	testCases := []struct {
		title    string
		entity   input.Entity
		header   []input.Field
		expected string
	}{
		{
			title:    "Content type and charset",
			entity:   input.Entity{ContentType: "application/json", Charset: "UTF-8"},
			expected: "application/json; charset=UTF-8",
		},
		{
			title:    "Content type only",
			entity:   input.Entity{ContentType: "application/json"},
			expected: "application/json",
		},
		{
			title:    "Neither",
			entity:   input.Entity{},
			expected: input.DefaultEntityType,
		},
		{
			title:    "Explicit header wins",
			entity:   input.Entity{ContentType: "application/json"},
			header:   []input.Field{{Name: "Content-Type", Value: "application/vnd.api+json"}},
			expected: "application/vnd.api+json",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			in := &input.Request{Method: input.MethodPost, URL: "http://example.com/", Entity: tt.entity}
			for _, f := range tt.header {
				in.Header.Add(f.Name, f.Value)
			}
			r, err := BuildHTTPRequest(in)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if actual := r.Header.Values("Content-Type"); !reflect.DeepEqual(actual, []string{tt.expected}) {
				t.Errorf("unexpected content type: expected=%s, actual=%v", tt.expected, actual)
			}
		})
	}
}

func TestBuildHTTPRequest_Invalid(t *testing.T) {
	testCases := []struct {
		title string
		in    *input.Request
	}{
		{title: "No method", in: &input.Request{URL: "http://example.com/"}},
		{title: "No URL", in: &input.Request{Method: input.MethodPost}},
		{title: "Unsupported scheme", in: &input.Request{Method: input.MethodPost, URL: "ftp://example.com/"}},
		{title: "No host", in: &input.Request{Method: input.MethodPost, URL: "http:///path"}},
		{title: "Bad charset", in: &input.Request{
			Method: input.MethodPut,
			URL:    "http://example.com/",
			Entity: input.Entity{ContentType: "application/json", Charset: "klingon"},
		}},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			if _, err := BuildHTTPRequest(tt.in); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestBuildHTTPHeader(t *testing.T) {
	// Setup
	in := &input.Request{}
	in.Header.Add("X-Foo", "foo")
	in.Header.Add("X-Multi-Value", "value 1")
	in.Header.Add("X-Multi-Value", "value 2")
	in.Header.Add("X-Replaced", "old 1")
	in.Header.Add("X-Replaced", "old 2")
	in.Header.Set("X-Replaced", "new")

	// Exercise
	httpHeader := buildHTTPHeader(in)

	// Verify
	expected := http.Header{
		"X-Foo":         []string{"foo"},
		"X-Multi-Value": []string{"value 1", "value 2"},
		"X-Replaced":    []string{"new"},
	}
	if !reflect.DeepEqual(httpHeader, expected) {
		t.Errorf("unexpected header: expected=%v, actual=%v", expected, httpHeader)
	}
}
