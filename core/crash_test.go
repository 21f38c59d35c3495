package core

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger
	SetLogger(log.New(&buf, "", 0))
	t.Cleanup(func() {
		SetLogger(prev)
		SetVerbose(false)
		SetCrashCleanup(nil)
	})
	return &buf
}

func TestHandleCrash_Nil(t *testing.T) {
	buf := captureLog(t)
	assert.NoError(t, HandleCrash(nil))
	assert.Empty(t, buf.String())
}

func TestHandleCrash_String(t *testing.T) {
	buf := captureLog(t)
	cleaned := 0
	SetCrashCleanup(func() { cleaned++ })

	err := HandleCrash("boom")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, cleaned)
	assert.Contains(t, buf.String(), "CRASH DETECTED: boom")
	assert.Contains(t, buf.String(), "Stack Trace:")
}

func TestHandleCrash_ErrorValuePreserved(t *testing.T) {
	captureLog(t)
	sentinel := errors.New("sentinel")
	err := HandleCrash(sentinel)
	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, ErrPanic)
}

func TestHandleCrash_CleanupPanicContained(t *testing.T) {
	buf := captureLog(t)
	SetCrashCleanup(func() { panic("cleanup") })

	assert.NotPanics(t, func() {
		_ = HandleCrash("boom")
	})
	assert.Contains(t, buf.String(), "crash cleanup panicked: cleanup")
}

func TestDebugf_VerboseGate(t *testing.T) {
	buf := captureLog(t)

	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debugf("shown %d", 2)
	assert.Equal(t, "shown 2\n", buf.String())

	Logf("always")
	assert.Contains(t, buf.String(), "always")
}
