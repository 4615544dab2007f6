// Package trace renders an error and its chain of causes as plain text,
// for callers that can only consume strings.
package trace

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type causer interface {
	Cause() error
}

// Level is one entry of a cause chain.
type Level struct {
	Class   string
	Message string
	Stack   []string
}

// Newline separates lines of Format's output.
var Newline = "\n"

func init() {
	if runtime.GOOS == "windows" {
		Newline = "\r\n"
	}
}

// Levels walks err and its causes. Wrappers that only record a stack are
// folded into the level below them, and each message is stripped of the
// text already shown by its cause.
func Levels(err error) []Level {
	var levels []Level
	var pending errors.StackTrace
	for err != nil {
		next := unwrap(err)
		if st, ok := err.(stackTracer); ok && pending == nil {
			pending = st.StackTrace()
		}
		if next != nil && err.Error() == next.Error() {
			err = next
			continue
		}

		levels = append(levels, Level{
			Class:   fmt.Sprintf("%T", err),
			Message: ownMessage(err, next),
			Stack:   formatStack(pending),
		})
		pending = nil
		err = next
	}
	return levels
}

// Format writes the class, message and stack trace of every level, with a
// "---" line between a level and its cause.
func Format(err error) string {
	var b strings.Builder
	levels := Levels(err)
	for i, level := range levels {
		b.WriteString("Exception class: " + level.Class + Newline)
		b.WriteString("Exception message: " + level.Message + Newline)
		b.WriteString("Exception stack trace: " + Newline)
		for _, frame := range level.Stack {
			b.WriteString(" " + frame + Newline)
		}
		if i < len(levels)-1 {
			b.WriteString("---" + Newline)
		}
	}
	return b.String()
}

func unwrap(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}

func ownMessage(err, cause error) string {
	msg := err.Error()
	if cause == nil {
		return msg
	}
	if trimmed := strings.TrimSuffix(msg, ": "+cause.Error()); trimmed != msg {
		return trimmed
	}
	return msg
}

func formatStack(st errors.StackTrace) []string {
	frames := make([]string, 0, len(st))
	for _, f := range st {
		// "%+s" prints "function\n\tfile"
		frame := strings.Replace(fmt.Sprintf("%+s:%d", f, f), "\n\t", " ", 1)
		frames = append(frames, frame)
	}
	return frames
}
