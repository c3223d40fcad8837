package utils

import (
	"fmt"
	"io"
	"regexp"

	"github.com/muesli/termenv"
)

const (
	SMALL_LINE_SEP = "------------------------------"
)

var ANSI_ESCAPE_SEQUENCE_REGEX = regexp.MustCompile("[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))")

func StripANSISequences(str string) string {
	return ANSI_ESCAPE_SEQUENCE_REGEX.ReplaceAllString(str, "")
}

// ClearScreen clears the terminal and moves the cursor to the top left corner.
func ClearScreen(w io.Writer) {
	fmt.Fprintf(w, termenv.CSI+termenv.EraseDisplaySeq, 2)
	fmt.Fprintf(w, termenv.CSI+termenv.CursorPositionSeq, 1, 1)
}

func PrintSmallLineSeparator(w io.Writer) {
	fmt.Fprintln(w, SMALL_LINE_SEP)
}
