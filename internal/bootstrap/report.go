package bootstrap

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// Report prints the category, cause and next step of failure.
func Report(w io.Writer, failure *Failure) {
	if w == nil || failure == nil {
		return
	}
	_, _ = color.New(color.FgRed, color.Bold).Fprintf(w, messages.FailureHeaderFmt, failure.Kind.Label())
	if failure.Err != nil {
		_, _ = fmt.Fprintf(w, messages.FailureCauseFmt, failure.Err)
	}
	if failure.Next != "" {
		_, _ = color.New(color.FgCyan).Fprintf(w, messages.FailureNextFmt, failure.Next)
	}
}
