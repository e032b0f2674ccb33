package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question.  Only an answer starting with 'y' or 'Y'
// counts as yes; an empty answer or end of input is no.
//
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s y/N? ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	fmt.Fprintln(out)
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y"), nil
}
