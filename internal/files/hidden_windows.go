//go:build windows

package files

import (
	"golang.org/x/sys/windows"
)

// IsHidden checks the hidden attribute, falling back to the dot-file rule
// when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return false
	}

	ptr, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
