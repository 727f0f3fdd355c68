// Package tasks is zapp's task model and execution engine.
//
// A task tree is built once by the Loader from raw configuration values and
// then run by the Engine in a single depth-first pass. Each task reports
// exactly one Status; a Group reports FAILURE when any direct child failed
// and SUCCESS otherwise, and never stops early on a failing child.
//
// Two failure channels are kept apart. Per-task runtime problems (I/O
// errors, link conflicts, non-zero shell exits, render errors) become
// StatusFailure and the run continues. Environment and configuration
// problems (an unreadable task file, an invalid mode, a parent path that is
// a file, a shell that cannot be started) are returned as errors and abort
// the run immediately.
package tasks
