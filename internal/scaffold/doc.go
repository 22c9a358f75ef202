// Package scaffold renders the controller, business, repository and model
// files of an entity from embedded templates and writes them into a target
// solution. Composition is pure; only the Materializer touches the filesystem.
package scaffold
