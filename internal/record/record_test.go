package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vvka-141/credload/pkg/credload"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		want      credload.Entry
		wantErrIs error
	}{
		{name: "simple record", line: "alice!1234", want: credload.Entry{Username: "alice", PIN: 1234}},
		{name: "trailing newline", line: "alice!1234\n", want: credload.Entry{Username: "alice", PIN: 1234}},
		{name: "trailing CRLF", line: "alice!1234\r\n", want: credload.Entry{Username: "alice", PIN: 1234}},
		{name: "trailing spaces and tabs", line: "alice!9999 \t ", want: credload.Entry{Username: "alice", PIN: 9999}},
		{name: "username with spaces", line: "Jean Dupont!4321", want: credload.Entry{Username: "Jean Dupont", PIN: 4321}},
		{name: "empty username accepted", line: "!1234", want: credload.Entry{Username: "", PIN: 1234}},
		{name: "non-ASCII username", line: "zoë!5678", want: credload.Entry{Username: "zoë", PIN: 5678}},
		{name: "smallest PIN", line: "min!1000", want: credload.Entry{Username: "min", PIN: 1000}},

		{name: "empty line", line: "", wantErrIs: credload.ErrMalformedRecord},
		{name: "no delimiter", line: "alice1234", wantErrIs: credload.ErrMalformedRecord},
		{name: "two delimiters", line: "al!ice!1234", wantErrIs: credload.ErrMalformedRecord},
		{name: "garbage delimiters", line: "!!bad!!", wantErrIs: credload.ErrMalformedRecord},
		{name: "short PIN", line: "carol!12", wantErrIs: credload.ErrInvalidPinLength},
		{name: "long PIN", line: "carol!12345", wantErrIs: credload.ErrInvalidPinLength},
		{name: "empty PIN", line: "carol!", wantErrIs: credload.ErrInvalidPinLength},
		{name: "leading space in PIN", line: "carol! 123", wantErrIs: credload.ErrNonNumericPin},
		{name: "leading zero", line: "bob!0123", wantErrIs: credload.ErrLeadingZeroPin},
		{name: "all zeros", line: "bob!0000", wantErrIs: credload.ErrLeadingZeroPin},
		{name: "letters", line: "dan!12a4", wantErrIs: credload.ErrNonNumericPin},
		{name: "plus sign", line: "dan!+123", wantErrIs: credload.ErrNonNumericPin},
		{name: "underscore", line: "dan!1_23", wantErrIs: credload.ErrNonNumericPin},
		{name: "non-ASCII digits", line: "dan!١٢٣٤", wantErrIs: credload.ErrNonNumericPin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line, 5)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				require.ErrorIs(t, err, credload.ErrInvalidRecord)

				var recErr *credload.RecordError
				require.ErrorAs(t, err, &recErr)
				require.Equal(t, 5, recErr.Line)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ErrorDoesNotLeakPIN(t *testing.T) {
	_, err := Parse("bob!0123", 1)
	require.Error(t, err)
	require.NotContains(t, err.Error(), "0123")
	require.NotContains(t, err.Error(), "bob")
}

func TestParser_DefaultPolicy(t *testing.T) {
	p := NewParser(Policy{})

	first, err := p.ParseLine(1, "eve!1111")
	require.NoError(t, err)
	second, err := p.ParseLine(2, "eve!2222")
	require.NoError(t, err)
	require.Equal(t, "eve", first.Username)
	require.Equal(t, 2222, second.PIN)

	_, err = p.ParseLine(3, "!1234")
	require.NoError(t, err)
}

func TestParser_StrictPolicy(t *testing.T) {
	t.Run("empty username", func(t *testing.T) {
		p := NewParser(StrictPolicy())
		_, err := p.ParseLine(1, "!1234")
		require.ErrorIs(t, err, credload.ErrEmptyUsername)
	})

	t.Run("duplicate username", func(t *testing.T) {
		p := NewParser(StrictPolicy())
		_, err := p.ParseLine(1, "eve!1111")
		require.NoError(t, err)
		_, err = p.ParseLine(2, "eve!2222")
		require.ErrorIs(t, err, credload.ErrDuplicateUsername)

		var recErr *credload.RecordError
		require.ErrorAs(t, err, &recErr)
		require.Equal(t, 2, recErr.Line)
	})

	t.Run("format errors take precedence", func(t *testing.T) {
		p := NewParser(StrictPolicy())
		_, err := p.ParseLine(1, "!0123")
		require.ErrorIs(t, err, credload.ErrLeadingZeroPin)
	})
}

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: nil},
		{name: "single line no newline", content: "alice!1234", want: []string{"alice!1234"}},
		{name: "trailing newline", content: "a!1111\nb!2222\n", want: []string{"a!1111", "b!2222"}},
		{name: "CRLF", content: "a!1111\r\nb!2222\r\n", want: []string{"a!1111", "b!2222"}},
		{name: "blank line kept", content: "a!1111\n\nb!2222\n", want: []string{"a!1111", "", "b!2222"}},
		{name: "only newline", content: "\n", want: []string{""}},
		{name: "lone CR", content: "a!1111\rb!2222\r", want: []string{"a!1111", "b!2222"}},
		{name: "mixed breaks", content: "a!1111\rb!2222\r\nc!3333\n", want: []string{"a!1111", "b!2222", "c!3333"}},
		{name: "CR then blank", content: "a!1111\r\r", want: []string{"a!1111", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			var nums []int
			err := Scan([]byte(tt.content), func(lineNum int, line string) error {
				nums = append(nums, lineNum)
				got = append(got, line)
				return nil
			})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			for i, n := range nums {
				require.Equal(t, i+1, n)
			}
		})
	}
}

func TestScan_StopsOnCallbackError(t *testing.T) {
	calls := 0
	err := Scan([]byte("a!1111\nbad\nc!3333\n"), func(lineNum int, line string) error {
		calls++
		_, err := Parse(line, lineNum)
		return err
	})
	require.ErrorIs(t, err, credload.ErrMalformedRecord)
	require.Equal(t, 2, calls)
}

func TestScan_LongLine(t *testing.T) {
	long := strings.Repeat("a", 4*1024*1024) + "!1234"
	content := "ok!1234\n" + long + "\n"

	var got []string
	err := Scan([]byte(content), func(_ int, line string) error {
		got = append(got, line)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ok!1234", long}, got)
}
