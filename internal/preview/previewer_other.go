//go:build !windows

package preview

import (
	"github.com/sirupsen/logrus"
)

func newWindowsPreviewer(string, logrus.FieldLogger) Previewer {
	return unavailablePreviewer{goos: "windows"}
}
