// Package filesystem provides the filesystem seam used by task operations.
//
// Tasks never touch the os package directly; they go through FS so the
// copy and template operations can run against an in-memory afero tree in
// tests and against the real disk in the CLI.
package filesystem
