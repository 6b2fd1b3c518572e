//go:build windows

package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	apperr "github.com/kk-code-lab/qpreview/internal/errors"
)

type windowsPreviewer struct {
	mode     string
	pipeName string
	opened   bool
	log      logrus.FieldLogger
}

func newWindowsPreviewer(mode string, log logrus.FieldLogger) Previewer {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = "auto"
	}
	p := &windowsPreviewer{mode: mode, log: log}
	if mode != "shell" {
		sid, err := currentUserSID()
		if err != nil {
			log.WithError(err).Debug("cannot resolve user SID, QuickLook pipe disabled")
		} else {
			p.pipeName = quickLookPipeName(sid)
		}
	}
	return p
}

func (p *windowsPreviewer) Show(path string, fullscreen bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperr.WithPath(apperr.PreviewFailed, "resolve", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return apperr.WithPath(apperr.PreviewFailed, "stat", abs, err)
	}

	if p.mode != "shell" {
		err := p.sendPipe(abs)
		if err == nil {
			p.opened = true
			return nil
		}
		if p.mode == "pipe" {
			return apperr.WithPath(apperr.PreviewFailed, "QuickLook pipe for", abs, err)
		}
		p.log.WithError(err).Debug("QuickLook pipe unavailable, using ShellExecute")
	}

	return shellExecute(abs, fullscreen)
}

func (p *windowsPreviewer) sendPipe(path string) error {
	if p.pipeName == "" {
		return fmt.Errorf("no pipe name")
	}
	f, err := os.OpenFile(p.pipeName, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	_, err = f.WriteString(quickLookMessage(!p.opened, path) + "\n")
	return err
}

func (p *windowsPreviewer) Close() error {
	return nil
}

func shellExecute(path string, fullscreen bool) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return apperr.WithPath(apperr.PreviewFailed, "ShellExecute", path, err)
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return apperr.WithPath(apperr.PreviewFailed, "ShellExecute", path, err)
	}
	var params *uint16
	if p := shellExecuteParams(fullscreen); p != "" {
		if params, err = windows.UTF16PtrFromString(p); err != nil {
			return apperr.WithPath(apperr.PreviewFailed, "ShellExecute", path, err)
		}
	}
	if err := windows.ShellExecute(0, verb, file, params, nil, windows.SW_SHOWNORMAL); err != nil {
		return apperr.WithPath(apperr.PreviewFailed, "ShellExecute", path, err)
	}
	return nil
}

func currentUserSID() (string, error) {
	token := windows.GetCurrentProcessToken()
	user, err := token.GetTokenUser()
	if err != nil {
		return "", err
	}
	return user.User.Sid.String(), nil
}
