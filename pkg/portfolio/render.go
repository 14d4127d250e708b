// Package portfolio renders static portfolio sites from theme templates.
package portfolio

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	indexFile = "index.html"
	styleFile = "style.css"
)

// Input is everything a template needs.
type Input struct {
	JobID        string
	Theme        string
	PrimaryColor string
	Name         string
	Bio          string
	Skills       []string
}

// Site locates a rendered site on disk.
type Site struct {
	JobID     string
	Dir       string
	IndexPath string
	StylePath string
	ZipPath   string
}

// Renderer reads themes from templatesDir and writes sites under outputDir.
type Renderer struct {
	templatesDir string
	outputDir    string
}

func NewRenderer(templatesDir, outputDir string) *Renderer {
	return &Renderer{templatesDir: templatesDir, outputDir: outputDir}
}

// Render fills the theme's templates, writes <output>/<job>/{index.html,style.css}
// and packs both into <output>/<job>.zip.
func (r *Renderer) Render(ctx context.Context, in Input) (Site, error) {
	if err := ctx.Err(); err != nil {
		return Site{}, err
	}
	site, err := r.Paths(in.JobID)
	if err != nil {
		return Site{}, err
	}
	themeName := strings.ToLower(strings.TrimSpace(in.Theme))
	if !ValidThemeName(themeName) {
		return Site{}, fmt.Errorf("%w: %q", ErrThemeNotFound, in.Theme)
	}
	theme := LookupTheme(themeName)

	color := strings.TrimSpace(in.PrimaryColor)
	if color == "" {
		color = DefaultColor
	}
	if !ValidColor(color) {
		return Site{}, fmt.Errorf("%w: %q", ErrInvalidColor, in.PrimaryColor)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultName
	}

	page, err := r.readTemplate(theme.Name, indexFile)
	if err != nil {
		return Site{}, err
	}
	css, err := r.readTemplate(theme.Name, styleFile)
	if err != nil {
		return Site{}, err
	}

	page = strings.NewReplacer(
		"{{NAME}}", html.EscapeString(name),
		"{{BIO}}", html.EscapeString(in.Bio),
	).Replace(page)
	page, err = injectSkills(page, theme, in.Skills)
	if err != nil {
		return Site{}, &RenderError{Message: "inject skills", Cause: err}
	}
	css = strings.ReplaceAll(css, "{{COLOR}}", color)

	if err := os.MkdirAll(site.Dir, 0o755); err != nil {
		return Site{}, &RenderError{Message: "create site dir", Cause: err}
	}
	if err := os.WriteFile(site.IndexPath, []byte(page), 0o644); err != nil {
		return Site{}, &RenderError{Message: "write " + indexFile, Cause: err}
	}
	if err := os.WriteFile(site.StylePath, []byte(css), 0o644); err != nil {
		return Site{}, &RenderError{Message: "write " + styleFile, Cause: err}
	}
	if err := writeZip(site.ZipPath, map[string]string{indexFile: site.IndexPath, styleFile: site.StylePath}); err != nil {
		return Site{}, &RenderError{Message: "write zip", Cause: err}
	}

	slog.InfoContext(ctx, "portfolio rendered",
		"job_id", in.JobID,
		"theme", theme.Name,
		"skills", len(in.Skills))
	return site, nil
}

// Paths returns where a job's files live without touching the disk.
func (r *Renderer) Paths(jobID string) (Site, error) {
	if !ValidJobID(jobID) {
		return Site{}, ErrInvalidJobID
	}
	dir := filepath.Join(r.outputDir, jobID)
	return Site{
		JobID:     jobID,
		Dir:       dir,
		IndexPath: filepath.Join(dir, indexFile),
		StylePath: filepath.Join(dir, styleFile),
		ZipPath:   dir + ".zip",
	}, nil
}

// Find returns a rendered site, or ErrSiteNotFound if its zip is missing.
func (r *Renderer) Find(jobID string) (Site, error) {
	site, err := r.Paths(jobID)
	if err != nil {
		return Site{}, err
	}
	if _, err := os.Stat(site.ZipPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Site{}, ErrSiteNotFound
		}
		return Site{}, err
	}
	return site, nil
}

// Remove deletes a job's directory and zip. Missing files are not an error.
func (r *Renderer) Remove(jobID string) error {
	site, err := r.Paths(jobID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(site.Dir); err != nil {
		return err
	}
	if err := os.Remove(site.ZipPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Themes lists theme directories that carry both template files.
func (r *Renderer) Themes() ([]string, error) {
	entries, err := os.ReadDir(r.templatesDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || !ValidThemeName(e.Name()) {
			continue
		}
		if fileExists(filepath.Join(r.templatesDir, e.Name(), indexFile)) &&
			fileExists(filepath.Join(r.templatesDir, e.Name(), styleFile)) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// TemplatesDir is the theme root, exposed for readiness checks.
func (r *Renderer) TemplatesDir() string { return r.templatesDir }

func (r *Renderer) readTemplate(theme, file string) (string, error) {
	b, err := os.ReadFile(filepath.Join(r.templatesDir, theme, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s/%s", ErrThemeNotFound, theme, file)
		}
		return "", &RenderError{Message: "read template", Cause: err}
	}
	return string(b), nil
}

// injectSkills appends one chip per skill inside the theme's container.
// A template without the container is returned untouched.
func injectSkills(page string, theme Theme, skills []string) (string, error) {
	if len(skills) == 0 {
		return page, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	container := doc.Find(theme.Container).First()
	if container.Length() == 0 {
		slog.Warn("skill container missing from template", "theme", theme.Name, "selector", theme.Container)
		return page, nil
	}
	var chips strings.Builder
	for _, s := range skills {
		fmt.Fprintf(&chips, `<span class="%s">%s</span>`, theme.SkillClass, html.EscapeString(s))
	}
	container.AppendHtml(chips.String())
	return doc.Html()
}

func writeZip(dst string, files map[string]string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := addToZip(zw, name, files[name]); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addToZip(zw *zip.Writer, name, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
