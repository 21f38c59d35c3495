package engine_test

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/engine"
	"github.com/lixenwraith/webterm/host/hosttest"
	"github.com/lixenwraith/webterm/terminal"
)

// renderCall is one recorded Backend.Render
type renderCall struct {
	full      bool
	positions []terminal.Position
	width     int
	height    int
}

// fakeBackend records the calls a driver makes
type fakeBackend struct {
	initErr  error
	inits    [][2]int
	renders  []renderCall
	releases int
	width    int
	height   int
}

func (b *fakeBackend) Initialize(width, height int) error {
	b.inits = append(b.inits, [2]int{width, height})
	if b.initErr != nil {
		return b.initErr
	}
	b.width, b.height = width, height
	return nil
}

func (b *fakeBackend) Render(diff terminal.Diff, snap *terminal.Snapshot) {
	if snap.Width() != b.width || snap.Height() != b.height {
		terminal.Violation("fake.Render", "snapshot %dx%d, grid %dx%d", snap.Width(), snap.Height(), b.width, b.height)
	}
	b.renders = append(b.renders, renderCall{
		full:      diff.IsFull(),
		positions: diff.Positions(),
		width:     snap.Width(),
		height:    snap.Height(),
	})
}

func (b *fakeBackend) CellSize() (float64, float64) { return 10, 20 }

func (b *fakeBackend) Release() { b.releases++ }

// quietLogs discards log output for the duration of the test
func quietLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	core.SetLogger(log.New(&buf, "", 0))
	t.Cleanup(func() { core.SetLogger(log.Default()) })
	return &buf
}

func TestDriver_Lifecycle(t *testing.T) {
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	d := engine.NewDriver(win, b, 4, 2, func(f *terminal.Frame) {
		f.SetString(0, 0, "hi", tcell.StyleDefault)
	})
	assert.Equal(t, engine.StateUninitialized, d.State())
	assert.Empty(t, b.inits, "nothing happens before the first callback")

	d.Start()
	d.Start()
	assert.Equal(t, 1, win.Pending())

	win.Flush()
	assert.Equal(t, engine.StateRunning, d.State())
	assert.Equal(t, [][2]int{{4, 2}}, b.inits)
	require.Len(t, b.renders, 1)
	assert.True(t, b.renders[0].full)
	assert.Equal(t, 1, win.Pending(), "re-scheduled")

	win.Flush()
	require.Len(t, b.renders, 2)
	assert.False(t, b.renders[1].full)
	assert.Empty(t, b.renders[1].positions, "unchanged frame renders an empty diff")
	assert.Equal(t, 2, d.Frames())
}

func TestDriver_ResizeForcesFull(t *testing.T) {
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	d := engine.NewDriver(win, b, 80, 24, nil)
	d.Start()
	win.FlushN(2)

	d.Resize(100, 30)
	w, h := d.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)

	win.Flush()
	assert.Equal(t, [][2]int{{80, 24}, {100, 30}}, b.inits)
	last := b.renders[len(b.renders)-1]
	assert.True(t, last.full)
	assert.Equal(t, 100, last.width)
	assert.Equal(t, 30, last.height)

	win.Flush()
	assert.False(t, b.renders[len(b.renders)-1].full)
	assert.Len(t, b.inits, 2, "reconciled once")
}

func TestDriver_ResizeBeforeStart(t *testing.T) {
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	d := engine.NewDriver(win, b, 80, 24, nil)
	d.Resize(0, -3)
	d.Start()
	win.Flush()
	assert.Equal(t, [][2]int{{1, 1}}, b.inits, "clamped and initialized once")
}

func TestDriver_StopIsIdempotent(t *testing.T) {
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	d := engine.NewDriver(win, b, 2, 2, nil)

	var stops []error
	d.OnStop(func(err error) { stops = append(stops, err) })
	d.Start()
	win.Flush()

	d.Stop()
	d.Stop()
	assert.Equal(t, engine.StateStopped, d.State())
	assert.Equal(t, 1, b.releases)
	assert.Zero(t, win.Pending(), "pending callback cancelled")
	assert.Equal(t, []error{nil}, stops)

	win.FlushN(3)
	assert.Len(t, b.renders, 1)

	d.Resize(10, 10)
	d.Start()
	assert.Zero(t, win.Pending())

	called := false
	d.OnStop(func(error) { called = true })
	assert.True(t, called, "late observers run immediately")
}

func TestDriver_InitializeFailureStops(t *testing.T) {
	quietLogs(t)
	win := hosttest.NewWindow()
	b := &fakeBackend{initErr: terminal.ErrSurfaceUnavailable}
	d := engine.NewDriver(win, b, 2, 2, nil)

	var stopErr error
	d.OnStop(func(err error) { stopErr = err })
	d.Start()
	win.Flush()

	assert.Equal(t, engine.StateStopped, d.State())
	assert.ErrorIs(t, d.Err(), terminal.ErrSurfaceUnavailable)
	assert.ErrorIs(t, stopErr, terminal.ErrSurfaceUnavailable)
	assert.Empty(t, b.renders)
	assert.Zero(t, win.Pending())
}

func TestDriver_PanicStops(t *testing.T) {
	logs := quietLogs(t)
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	boom := errors.New("boom")
	frames := 0
	d := engine.NewDriver(win, b, 2, 2, func(*terminal.Frame) {
		frames++
		if frames == 2 {
			panic(boom)
		}
	})
	d.Start()
	win.FlushN(3)

	assert.Equal(t, engine.StateStopped, d.State())
	assert.ErrorIs(t, d.Err(), boom)
	assert.Equal(t, 1, b.releases)
	assert.Len(t, b.renders, 1)
	assert.Contains(t, logs.String(), "CRASH DETECTED")
}

func TestDriver_InvariantViolationStops(t *testing.T) {
	quietLogs(t)
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	d := engine.NewDriver(win, b, 3, 1, nil)
	d.Start()
	win.Flush()

	// Backend loses track of the grid; the next frame no longer matches it
	b.width = 5
	win.Flush()

	assert.Equal(t, engine.StateStopped, d.State())
	assert.ErrorIs(t, d.Err(), terminal.ErrInvariantViolation)
}

// retainingBackend reports a fixed per-cell resource count
type retainingBackend struct {
	fakeBackend
	retained int
}

func (b *retainingBackend) Retained() int { return b.retained }

func TestDriver_RetainedMustMatchGrid(t *testing.T) {
	quietLogs(t)
	win := hosttest.NewWindow()
	b := &retainingBackend{retained: 6}
	d := engine.NewDriver(win, b, 3, 2, nil)
	d.Start()
	win.Flush()
	require.Equal(t, engine.StateRunning, d.State())

	// Resize without the backend growing its resources
	d.Resize(4, 2)
	win.Flush()
	assert.Equal(t, engine.StateStopped, d.State())
	assert.ErrorIs(t, d.Err(), terminal.ErrInvariantViolation)
	assert.Len(t, b.renders, 1)
}

func TestDriver_StopFromDraw(t *testing.T) {
	win := hosttest.NewWindow()
	b := &fakeBackend{}
	var d *engine.Driver
	d = engine.NewDriver(win, b, 2, 2, func(*terminal.Frame) {
		d.Stop()
	})
	d.Start()
	win.Flush()

	assert.Equal(t, engine.StateStopped, d.State())
	assert.Zero(t, win.Pending(), "no callback after stopping mid-frame")
	assert.NoError(t, d.Err())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Uninitialized", engine.StateUninitialized.String())
	assert.Equal(t, "Running", engine.StateRunning.String())
	assert.Equal(t, "Stopped", engine.StateStopped.String())
}
