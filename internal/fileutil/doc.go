// Package fileutil provides the filesystem primitives behind the lifecycle
// controller: marker-file detection, data-directory creation and writability
// probing, and configuration-fragment copying with overwrite semantics.
package fileutil
