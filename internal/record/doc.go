// Package record parses and validates credential records.
//
// A record is one line of a credential source:
//
//	<username>!<pin>
//
// Trailing whitespace and line endings are stripped before splitting. The
// line must split into exactly two fields on '!', and the PIN must be four
// ASCII digits with a non-zero first digit. Checks run in that order, so a
// line that violates several rules reports the first one.
//
// Parse validates a single line. Parser adds the optional Policy checks that
// need state across lines (duplicate usernames). Scan iterates the lines of a
// source buffer with 1-based line numbers.
package record
