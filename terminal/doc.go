// @focus: #sys { term }
// Package terminal defines the cell grid model shared by the browser renderers.
//
// Features:
//   - Cell and attribute model compatible with tcell styles and colors
//   - Immutable per-frame snapshots built through a tcell-style Frame surface
//   - Row-major frame diffing (Full or Partial)
//   - Backend contract implemented by the DOM, Canvas and WebGL2 renderers
//   - Terminal key, modifier and mouse semantics for normalized input events
//
// Nothing in this package touches the browser; see package host for that boundary.
package terminal
