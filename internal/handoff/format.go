package handoff

import (
	"bytes"
	"strings"
)

// Encode serializes the two reserved property lists into artifact bytes.
// Targets come first, then variables, each on its own line. When both lists
// are empty the artifact is empty too: no trailing newline, zero bytes.
func Encode(targets, vars []string) []byte {
	if len(targets)+len(vars) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, target := range targets {
		buf.WriteString(target)
		buf.WriteByte('\n')
	}
	for _, v := range vars {
		buf.WriteString(v)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Parse splits artifact bytes back into targets and variables. Lines with an
// "=" anywhere are variables, other non-blank lines are targets. Blank lines
// carry no information and are dropped; a trailing "\r" is stripped so
// artifacts that passed through CRLF tooling still parse.
func Parse(data []byte) (targets, vars []string) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if strings.Contains(line, "=") {
			vars = append(vars, line)
		} else {
			targets = append(targets, line)
		}
	}
	return targets, vars
}
