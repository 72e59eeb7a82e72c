package tommgmt

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ValentinKolb/tomkv/tomxml"
)

// NewID returns a fresh, randomly generated tom identifier suitable for
// passing to CreateEmptyTom.
func NewID() string {
	return uuid.NewString() + ".xml"
}

// CreateEmptyTom creates the empty <tom><root/></tom> document named name
// under dir, if it does not already exist. It reports whether a file was
// created.
func CreateEmptyTom(dir, name string) (bool, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if err := tomxml.Empty().DumpFile(path); err != nil {
		return false, fmt.Errorf("tommgmt: create %s: %w", name, err)
	}
	return true, nil
}

// RemoveTom deletes the document named name under dir, if present. It
// reports whether a file was removed.
func RemoveTom(dir, name string) (bool, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}
