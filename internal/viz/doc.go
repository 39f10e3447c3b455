// Package viz renders a physics universe in the terminal.
//
//   - [Canvas]: braille pixel grid with a per-cell hue layer
//   - [DrawUniverse]: boundary, links and particles projected onto a canvas
//   - [Model]: Bubble Tea live view driving the simulator one frame per tick
//   - [Recorder]: captures canvas frames into an animated GIF
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	S     - Single frame while paused
//	A     - Add a random particle
//	C     - Clear the universe
//	F     - Toggle the fountain
//	+/-   - Raise/lower gravity
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
