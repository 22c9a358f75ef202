// Package layout describes where generated files go inside a target
// solution: the four project directories, their namespaces, and the
// dependency-registration file with its two anchor methods. A project can
// override the defaults with .layergen/project.yaml.
package layout
