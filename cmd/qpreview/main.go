package main

import (
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
)

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	runOnMainThread(func() {
		os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
	})
}

// execute runs the root command and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(runPreview)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	return reportError(cmd, err, stderr)
}
