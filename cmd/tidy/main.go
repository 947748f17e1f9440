package main

import (
	"errors"
	"fmt"
	"os"
)

// exitCodeError carries a non-standard exit code out of a command that
// otherwise completed: 2 for conflicts in the preview, 3 for files with
// missing data or invalid names.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			// The preview was already rendered; the code is the message.
			os.Exit(ec.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
