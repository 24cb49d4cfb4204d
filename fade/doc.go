// Package fade animates the colors of a cell plane over wall-clock time.
//
// Three effects share one stepped interpolation loop:
//
//   - [FadeIn]: every explicit color rises from black to its captured value
//   - [FadeOut]: every explicit color falls from its captured value to black
//   - [Pulse]: fade-in then fade-out, repeated until the callback or context stops it
//
// Each call first captures a [Snapshot] of the plane. The brightest captured
// channel value becomes the number of steps, so the brightest channel passes
// through every intensity level exactly once; the requested duration is split
// evenly across the steps. Per tick the loop derives the iteration from the
// clock, rewrites the live plane from the snapshot, then either calls the
// configured [Callback] or renders through the [Host] and sleeps until the
// next absolute deadline.
//
// Default channels are never touched. A plane resized mid-animation is handled
// by clamping each tick to the overlap of the captured and live extents.
//
// # Example
//
//	scr := screen.New(term)
//	err := fade.FadeIn(ctx, scr, scr.Std(), 2*time.Second)
//
// # Thread Safety
//
// One animation per plane. Nothing else may write the plane's colors while an
// animation runs; resizing from another goroutine is allowed.
package fade
