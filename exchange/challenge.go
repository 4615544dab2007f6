package exchange

import (
	"regexp"
	"strings"
)

var (
	reToken68   = regexp.MustCompile(`^[A-Za-z0-9\-._~+/]+=*$`)
	reAuthParam = regexp.MustCompile(`^([!#$%&'*+.^_|~0-9A-Za-z-]+)\s*=\s*("(?:[^"\\]|\\.)*"|[^\s"]*)$`)
)

// challenge is one parsed WWW-Authenticate challenge.
type challenge struct {
	scheme string
	token  string
	params map[string]string
}

func (c *challenge) realm() string {
	return c.params["realm"]
}

func (c *challenge) is(scheme string) bool {
	return strings.EqualFold(c.scheme, scheme)
}

func parseChallenges(values []string) []*challenge {
	var challenges []*challenge
	for _, value := range values {
		var current *challenge
		for _, part := range splitQuoted(value) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if current != nil && reAuthParam.MatchString(part) {
				if name, v, ok := parseAuthParam(part); ok {
					current.params[name] = v
					continue
				}
			}

			scheme, rest := splitScheme(part)
			current = &challenge{scheme: scheme, params: map[string]string{}}
			challenges = append(challenges, current)
			if rest == "" {
				continue
			}
			if reToken68.MatchString(rest) {
				current.token = rest
			} else if name, v, ok := parseAuthParam(rest); ok {
				current.params[name] = v
			}
		}
	}
	return challenges
}

func findChallenge(challenges []*challenge, scheme string) *challenge {
	for _, c := range challenges {
		if c.is(scheme) {
			return c
		}
	}
	return nil
}

func splitScheme(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i == -1 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func parseAuthParam(s string) (string, string, bool) {
	m := reAuthParam.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	value := m[2]
	if strings.HasPrefix(value, `"`) {
		value = unquote(value[1 : len(value)-1])
	}
	return strings.ToLower(m[1]), value, true
}

func unquote(s string) string {
	var b strings.Builder
	escaped := false
	for _, c := range s {
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String()
}

// splitQuoted splits s on commas that are not inside a quoted string.
func splitQuoted(s string) []string {
	var parts []string
	quoted := false
	escaped := false
	start := 0
	for i, c := range s {
		switch {
		case escaped:
			escaped = false
		case c == '\\' && quoted:
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
