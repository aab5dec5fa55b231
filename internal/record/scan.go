package record

import (
	"bytes"
)

// Scan calls fn for every line of content with its 1-based line number.
// "\n", "\r\n" and a lone "\r" each end a line; a trailing line break does
// not produce an extra empty line, a final line without one is still
// delivered. Lines have no length limit. Scanning stops at the first error
// returned by fn.
func Scan(content []byte, fn func(lineNum int, line string) error) error {
	lineNum := 0
	for len(content) > 0 {
		var line []byte
		end := bytes.IndexAny(content, "\r\n")
		if end < 0 {
			line, content = content, nil
		} else {
			line = content[:end]
			next := end + 1
			if content[end] == '\r' && next < len(content) && content[next] == '\n' {
				next++
			}
			content = content[next:]
		}

		lineNum++
		if err := fn(lineNum, string(line)); err != nil {
			return err
		}
	}
	return nil
}
