package record

import "github.com/vvka-141/credload/pkg/credload"

// Policy enables checks stricter than the record format requires.
// The zero value accepts empty usernames and lets later duplicates win.
type Policy struct {
	RejectEmptyUsername bool `yaml:"reject_empty_username"`
	RejectDuplicates    bool `yaml:"reject_duplicates"`
}

// StrictPolicy enables every optional check.
func StrictPolicy() Policy {
	return Policy{RejectEmptyUsername: true, RejectDuplicates: true}
}

// Parser applies Parse and a Policy to consecutive lines of one source.
// A Parser must not be shared between sources or goroutines.
type Parser struct {
	policy Policy
	seen   map[string]struct{}
}

// NewParser creates a parser for a single source.
func NewParser(policy Policy) *Parser {
	p := &Parser{policy: policy}
	if policy.RejectDuplicates {
		p.seen = make(map[string]struct{})
	}
	return p
}

// ParseLine validates one line against the record format and the policy.
func (p *Parser) ParseLine(lineNum int, line string) (credload.Entry, error) {
	entry, err := Parse(line, lineNum)
	if err != nil {
		return credload.Entry{}, err
	}

	if p.policy.RejectEmptyUsername && entry.Username == "" {
		return credload.Entry{}, invalid(lineNum, credload.ErrEmptyUsername)
	}

	if p.policy.RejectDuplicates {
		if _, dup := p.seen[entry.Username]; dup {
			return credload.Entry{}, invalid(lineNum, credload.ErrDuplicateUsername)
		}
		p.seen[entry.Username] = struct{}{}
	}

	return entry, nil
}
