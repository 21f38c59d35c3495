package terminal

// Backend abstracts one browser rendering surface.
// Implemented by the DOM, Canvas and WebGL2 renderers in package render.
type Backend interface {
	// Initialize allocates retained resources for a width x height grid
	// Called again on resize; previously held resources are released first
	// Returns an error wrapping ErrSurfaceUnavailable when the host refuses the surface
	Initialize(width, height int) error

	// Render applies a diff: every cell on a full diff, only the listed cells otherwise
	// Never fails after a successful Initialize; dimension mismatches and
	// out-of-range positions panic with *InvariantError
	Render(diff Diff, snap *Snapshot)

	// CellSize returns the pixel footprint of one character cell
	CellSize() (width, height float64)

	// Release frees every retained host resource. Safe to call multiple times.
	// A backend may refuse to Initialize again after Release
	Release()
}
