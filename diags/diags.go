// Package diags has the message and exit-status helpers used by the vcsave
// tools.
//
// Messages go to stderr prefixed by the program's name.  A tool that dies
// exits with status 2, or 3 if any warnings were issued first.
//
package diags

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var progName = filepath.Base(os.Args[0])

// Output and Exit can be replaced by tests.
var (
	Output io.Writer = os.Stderr
	Exit             = os.Exit
)

var nWarnings = 0

// Warnings reports how many warnings have been issued.
func Warnings() int { return nWarnings }

// Warn writes a message and counts it as a warning.
func Warn(format string, fmtArgs ...interface{}) {
	Warn2("", format, fmtArgs...)
}

// Warn2 is like Warn, with a tag (such as "BUG") after the program name.
func Warn2(tag, format string, fmtArgs ...interface{}) {
	nWarnings++
	WriteMessage(tag, format, fmtArgs...)
}

// WarnIf warns if skipIfNil is not nil.  An empty format prints skipIfNil
// itself, which suits errors.
//
func WarnIf(skipIfNil interface{}, format string, fmtArgs ...interface{}) {
	WarnIf2(skipIfNil, "", format, fmtArgs...)
}

func WarnIf2(skipIfNil interface{}, tag, format string, fmtArgs ...interface{}) {
	if skipIfNil != nil {
		if format == "" {
			Warn2(tag, "%s", skipIfNil)
		} else {
			Warn2(tag, format, fmtArgs...)
		}
	}
}

// Die writes a message and exits with ExitStatus(true).
func Die(format string, fmtArgs ...interface{}) {
	Die2("", format, fmtArgs...)
}

// Die2 is Die with a tag.  An empty format exits without a message.
func Die2(tag, format string, fmtArgs ...interface{}) {
	if format != "" {
		WriteMessage(tag, format, fmtArgs...)
	}
	Exit(ExitStatus(true))
}

// DieIf dies if skipIfNil is not nil, in the manner of WarnIf.
func DieIf(skipIfNil interface{}, format string, fmtArgs ...interface{}) {
	DieIf2(skipIfNil, "", format, fmtArgs...)
}

func DieIf2(skipIfNil interface{}, tag, format string, fmtArgs ...interface{}) {
	if skipIfNil == nil {
		return
	} else if format == "" {
		Die2(tag, "%s", skipIfNil)
	} else {
		Die2(tag, format, fmtArgs...)
	}
}

// ExitStatus returns the status a tool should exit with: bit 1 set if it
// failed, bit 0 set if there were warnings.
//
func ExitStatus(failed bool) int {
	status := 0
	if failed {
		status = 2
	}
	if nWarnings > 0 {
		status |= 1
	}
	return status
}

// WriteMessage writes "prog tag: message" to Output, with no trailing blank
// line.  It does not count as a warning.
//
func WriteMessage(tag, format string, args ...interface{}) {
	text := progName
	if tag != "" {
		text += " " + tag
	}
	text += fmt.Sprintf(": "+format, args...)
	if l := len(text); text[l-1] == '\n' {
		text = text[:l-1]
	}
	fmt.Fprintln(Output, text)
}
