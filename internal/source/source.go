// Package source loads script source text from disk.
package source

import (
	"fmt"
	"os"
)

// AccessError reports a script file that is missing or unreadable.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Load reads the entire script file at path and returns its text.
// It returns *AccessError when the file cannot be opened or read;
// no partial content is ever returned.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &AccessError{Path: path, Err: err}
	}
	return string(data), nil
}
