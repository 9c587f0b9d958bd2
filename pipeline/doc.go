// Package pipeline provides a small step engine for chaining prompt
// rendering, model calls, and arbitrary transforms over a shared
// key/value store. Pipelines are assembled with a fluent Builder,
// validated at Build time, and immutable afterwards: each Execute run
// gets a fresh store, so a built pipeline can be run repeatedly or
// fanned out over a dataset.
package pipeline
