package trace

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestLevels(t *testing.T) {
	// Setup
	err := errors.Wrap(fmt.Errorf("dialing: %w", io.ErrUnexpectedEOF), "sending HTTP request")

	// Exercise
	levels := Levels(err)

	// Verify
	if len(levels) != 3 {
		t.Fatalf("unexpected number of levels: %d (%+v)", len(levels), levels)
	}
	expectedMessages := []string{"sending HTTP request", "dialing", "unexpected EOF"}
	for i, expected := range expectedMessages {
		if levels[i].Message != expected {
			t.Errorf("unexpected message at %d: expected=%s, actual=%s", i, expected, levels[i].Message)
		}
	}
	if levels[0].Class != "*errors.withMessage" {
		t.Errorf("unexpected class: %s", levels[0].Class)
	}
	if len(levels[0].Stack) == 0 {
		t.Errorf("outer level should carry the wrapping stack")
	}
	if !strings.Contains(levels[0].Stack[0], "trace.TestLevels") {
		t.Errorf("unexpected top frame: %s", levels[0].Stack[0])
	}
	if len(levels[2].Stack) != 0 {
		t.Errorf("plain errors have no stack: %v", levels[2].Stack)
	}
}

func TestFormat(t *testing.T) {
	// Setup
	err := errors.Wrap(errors.New("connection refused"), "sending HTTP request")

	// Exercise
	actual := Format(err)

	// Verify
	blocks := strings.Split(actual, "---"+Newline)
	if len(blocks) != 2 {
		t.Fatalf("expected two levels separated by a marker line:\n%s", actual)
	}
	for _, block := range blocks {
		if !strings.HasPrefix(block, "Exception class: ") {
			t.Errorf("block should start with the class:\n%s", block)
		}
		if !strings.Contains(block, Newline+"Exception message: ") {
			t.Errorf("block should contain the message:\n%s", block)
		}
		if !strings.Contains(block, Newline+"Exception stack trace: "+Newline+" ") {
			t.Errorf("block should contain stack frames:\n%s", block)
		}
	}
	if !strings.Contains(blocks[0], "Exception message: sending HTTP request"+Newline) {
		t.Errorf("unexpected first block:\n%s", blocks[0])
	}
	if !strings.Contains(blocks[1], "Exception class: *errors.fundamental"+Newline) {
		t.Errorf("unexpected second block:\n%s", blocks[1])
	}
	if strings.HasSuffix(actual, "---"+Newline) {
		t.Errorf("no marker after the last level")
	}
}

func TestFormat_Nil(t *testing.T) {
	if actual := Format(nil); actual != "" {
		t.Errorf("unexpected output: %q", actual)
	}
}

func TestFormat_SingleLevel(t *testing.T) {
	actual := Format(io.EOF)
	expected := "Exception class: *errors.errorString" + Newline +
		"Exception message: EOF" + Newline +
		"Exception stack trace: " + Newline
	if actual != expected {
		t.Errorf("unexpected output: expected=%q, actual=%q", expected, actual)
	}
}
