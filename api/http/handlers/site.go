package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/presenter"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/extractor"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/portfolio"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/security/jwt"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/site"
)

// SiteHandler serves the landing page, generation and the generated sites.
type SiteHandler struct {
	svc      site.UseCase
	validate *validator.Validate
	maxBytes int64
	pagesDir string
}

func NewSiteHandler(svc site.UseCase, maxBytes int64, pagesDir string) *SiteHandler {
	if maxBytes <= 0 {
		maxBytes = 15 << 20
	}
	return &SiteHandler{svc: svc, validate: newValidator(), maxBytes: maxBytes, pagesDir: pagesDir}
}

type generateForm struct {
	Theme        string `form:"theme" validate:"required,max=32,theme"`
	PrimaryColor string `form:"primary_color" validate:"omitempty,max=20,csscolor"`
}

type GenerateResponse struct {
	PreviewURL string `json:"preview_url"`
	JobID      string `json:"job_id"`
}

// Index serves the upload page.
func (h *SiteHandler) Index(c *fiber.Ctx) error {
	return c.SendFile(filepath.Join(h.pagesDir, "index.html"))
}

// Generate builds a portfolio site from an uploaded résumé.
// @Summary Generate portfolio
// @Description Extracts the résumé text, derives a bio and skills, renders the theme and zips it.
// @Tags    portfolio
// @Accept  multipart/form-data
// @Produce json
// @Param   file          formData file   true  "Résumé PDF"
// @Param   theme         formData string true  "Theme name (neo, glass, ...)"
// @Param   primary_color formData string false "Primary colour, default #00d2ff"
// @Security BearerAuth
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} presenter.ApiError
// @Failure 413 {object} presenter.ApiError
// @Failure 422 {object} presenter.ApiError
// @Failure 502 {object} presenter.ApiError
// @Router  /generate [post]
func (h *SiteHandler) Generate(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.ErrBadRequest("file is required (pdf)")
	}
	form := generateForm{
		Theme:        strings.TrimSpace(c.FormValue("theme")),
		PrimaryColor: strings.TrimSpace(c.FormValue("primary_color")),
	}
	if err := h.validate.Struct(form); err != nil {
		return presenter.ErrBadRequest(validationMessage(err))
	}

	file, err := fh.Open()
	if err != nil {
		return presenter.ErrBadRequest("failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return presenter.ErrTooLarge(err.Error())
		}
		return presenter.ErrBadRequest(err.Error())
	}

	job, err := h.svc.Generate(c.UserContext(), site.Request{
		Filename:     filepath.Base(fh.Filename),
		Data:         data,
		Theme:        strings.ToLower(form.Theme),
		PrimaryColor: form.PrimaryColor,
		OwnerID:      jwt.UserID(c),
	})
	if err != nil {
		return generateError(c, err)
	}
	slog.InfoContext(c.UserContext(), "portfolio generated",
		"job_id", job.ID,
		"theme", job.Theme,
		"skills", len(job.Skills),
		"anonymous", job.Anonymous())

	return presenter.JSON(c, http.StatusOK, GenerateResponse{
		PreviewURL: "/preview/" + job.ID,
		JobID:      job.ID,
	})
}

func generateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, extractor.ErrNotPDF):
		return presenter.ErrBadRequest("uploaded file is not a readable PDF")
	case errors.Is(err, extractor.ErrEmptyText):
		return presenter.ErrUnprocessable("no text could be extracted from the PDF")
	case errors.Is(err, portfolio.ErrThemeNotFound):
		return presenter.ErrBadRequest("unknown theme")
	case errors.Is(err, portfolio.ErrInvalidColor):
		return presenter.ErrBadRequest("invalid primary_color")
	case errors.Is(err, site.ErrAnnotation):
		slog.ErrorContext(c.UserContext(), "annotation failed", "error", err)
		return presenter.ErrBadGateway("language model request failed")
	default:
		return fmt.Errorf("generate portfolio: %w", err)
	}
}

// Preview serves a generated index.html at /preview/<job_id>/.
// @Summary Preview generated site
// @Tags    portfolio
// @Produce html
// @Param   job_id path string true "Job id"
// @Success 200 {string} string
// @Success 301 {string} string "redirect to the trailing-slash form"
// @Failure 404 {object} presenter.ApiError
// @Router  /preview/{job_id} [get]
func (h *SiteHandler) Preview(c *fiber.Ctx) error {
	s, err := h.findSite(c)
	if err != nil {
		return err
	}
	// the page links style.css relatively, so it must be served as a directory
	if !strings.HasSuffix(c.Path(), "/") {
		return c.Redirect(c.Path()+"/", fiber.StatusMovedPermanently)
	}
	c.Type("html", "utf-8")
	return c.SendFile(s.IndexPath)
}

// PreviewStyle serves the stylesheet referenced by the preview page.
// @Summary Preview stylesheet
// @Tags    portfolio
// @Produce plain
// @Param   job_id path string true "Job id"
// @Success 200 {string} string
// @Failure 404 {object} presenter.ApiError
// @Router  /preview/{job_id}/style.css [get]
func (h *SiteHandler) PreviewStyle(c *fiber.Ctx) error {
	s, err := h.findSite(c)
	if err != nil {
		return err
	}
	c.Type("css", "utf-8")
	return c.SendFile(s.StylePath)
}

// Download sends the zipped site.
// @Summary Download generated site
// @Tags    portfolio
// @Produce application/zip
// @Param   job_id path string true "Job id"
// @Success 200 {file} file
// @Failure 404 {object} presenter.ApiError
// @Router  /download/{job_id} [get]
func (h *SiteHandler) Download(c *fiber.Ctx) error {
	s, err := h.findSite(c)
	if err != nil {
		return err
	}
	return c.Download(s.ZipPath, fmt.Sprintf("portfolio_%s.zip", s.JobID))
}

func (h *SiteHandler) findSite(c *fiber.Ctx) (portfolio.Site, error) {
	s, err := h.svc.Site(c.Params("job_id"))
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, portfolio.ErrInvalidJobID), errors.Is(err, portfolio.ErrSiteNotFound):
		return portfolio.Site{}, presenter.ErrNotFound("site not found")
	default:
		return portfolio.Site{}, err
	}
}
