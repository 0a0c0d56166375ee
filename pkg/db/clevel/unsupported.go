//go:build !darwin && !freebsd && !linux

package clevel

import "github.com/eigerco/levelbind/pkg/db"

// DefaultLibraryNames is empty where libraries cannot be loaded.
var DefaultLibraryNames []string

func Open(string, db.Options) (db.Engine, error) {
	return nil, ErrUnsupportedPlatform
}

func Opener(string) db.Opener {
	return Open
}
