package checkers

import (
	"context"
	"fmt"
	"os"
)

// DirChecker verifies that a directory exists, and optionally that it accepts writes.
type DirChecker struct {
	name     string
	path     string
	writable bool
}

// NewTemplatesChecker checks the theme templates root is readable.
func NewTemplatesChecker(path string) *DirChecker {
	return &DirChecker{name: "templates", path: path}
}

// NewOutputChecker checks generated sites can still be written.
func NewOutputChecker(path string) *DirChecker {
	return &DirChecker{name: "output", path: path, writable: true}
}

func (c *DirChecker) Name() string { return c.name }

func (c *DirChecker) Check(ctx context.Context) error {
	entries, err := os.ReadDir(c.path)
	if err != nil {
		return err
	}
	if !c.writable {
		if len(entries) == 0 {
			return fmt.Errorf("%s is empty", c.path)
		}
		return nil
	}
	f, err := os.CreateTemp(c.path, ".writecheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
