// Package filesystem provides the production implementation of the
// types.FS interface the executor mutates through. Keeping the
// interface narrow makes the destructive paths (backup moves, removes)
// testable without touching real user files.
package filesystem
