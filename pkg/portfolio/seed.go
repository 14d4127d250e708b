package portfolio

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

//go:embed defaults
var defaults embed.FS

// Seed writes the bundled neo and glass themes into dir. Existing files are
// left alone so edited templates survive restarts.
func Seed(dir string) error {
	return fs.WalkDir(defaults, "defaults", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("defaults", filepath.FromSlash(path))
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		if _, err := os.Stat(dst); err == nil {
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		b, err := defaults.ReadFile(path)
		if err != nil {
			return err
		}
		slog.Info("seeded template", "path", dst)
		return os.WriteFile(dst, b, 0o644)
	})
}
