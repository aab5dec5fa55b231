package record

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vvka-141/credload/pkg/credload"
)

// Parse validates one line and returns the entry it describes.
// Failures are returned as *credload.RecordError carrying lineNum.
func Parse(line string, lineNum int) (credload.Entry, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	fields := strings.Split(line, credload.Delimiter)
	if len(fields) != 2 {
		return credload.Entry{}, invalid(lineNum, credload.ErrMalformedRecord)
	}
	username, pin := fields[0], fields[1]

	if utf8.RuneCountInString(pin) != credload.PINLength {
		return credload.Entry{}, invalid(lineNum, credload.ErrInvalidPinLength)
	}
	if pin[0] == '0' {
		return credload.Entry{}, invalid(lineNum, credload.ErrLeadingZeroPin)
	}
	if !isASCIIDigits(pin) {
		return credload.Entry{}, invalid(lineNum, credload.ErrNonNumericPin)
	}

	value, err := strconv.Atoi(pin)
	if err != nil {
		return credload.Entry{}, invalid(lineNum, credload.ErrNonNumericPin)
	}

	return credload.Entry{Username: username, PIN: value}, nil
}

// isASCIIDigits rejects signs, underscores and non-ASCII digits that
// strconv or other parsers might otherwise tolerate.
func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalid(lineNum int, kind error) error {
	return &credload.RecordError{Line: lineNum, Kind: kind}
}
