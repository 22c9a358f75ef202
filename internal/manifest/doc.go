// Package manifest parses and validates batch spec files: YAML documents
// listing the entities to generate in one run, with an optional version
// constraint on the tool. Files are validated against an embedded JSON
// Schema before they are decoded.
package manifest
