package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToStderrByDefault(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(Options{Level: "debug", Stderr: &buf})
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("path", "a.png").Debug("preview started")
	assert.Contains(t, buf.String(), "preview started")
	assert.Contains(t, buf.String(), "path=a.png")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Level: "chatty", Stderr: &buf})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}

func TestNewWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "qpreview.log")
	log, closer := New(Options{File: path, Stderr: &buf})
	log.Warn("preview failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "preview failed")
	assert.Empty(t, buf.String())
}

func TestDefaultFile(t *testing.T) {
	assert.Equal(t, "qpreview.log", filepath.Base(DefaultFile()))
}

func TestRedirectSwitchesOutput(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Stderr: &buf})
	log.Info("before")

	path := filepath.Join(t.TempDir(), "qpreview.log")
	closer := Redirect(log, path)
	log.Info("after")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "before")
	assert.NotContains(t, buf.String(), "after")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "after")
}
