package parser

import "fmt"

// SyntaxError reports malformed input text along with the position of the
// offending byte. Line and Column are 1-based.
type SyntaxError struct {
	Filename string
	Offset   int
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
}
