// Package filesystem provides a swappable abstraction layer for all filesystem operations.
//
// Production code runs on the OS filesystem; tests switch to an in-memory afero backend.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// GacheFs adapts the active backend to the gache.FileSystem interface,
// so every gache-backed file (favorites, details cache, query history) follows SetMemMapFs.
type GacheFs struct{}

// OpenFile opens a file using the current backend.
func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

// MkdirAll creates a directory using the current backend.
func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

// Remove deletes a file or directory tree if it exists.
func Remove(path string) error {
	exists, err := API().Exists(path)
	if err != nil || !exists {
		return err
	}

	return API().RemoveAll(path)
}
