//go:build !windows

package input

func flushConsoleInput() error {
	return nil
}
