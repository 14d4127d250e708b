package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/presenter"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/security/jwt"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/site"
)

// JobsHandler exposes the caller's generation history.
type JobsHandler struct {
	svc site.UseCase
}

func NewJobsHandler(svc site.UseCase) *JobsHandler { return &JobsHandler{svc: svc} }

type jobView struct {
	site.Job
	PreviewURL  string `json:"previewUrl"`
	DownloadURL string `json:"downloadUrl"`
}

func viewOf(j site.Job) jobView {
	return jobView{
		Job:         j,
		PreviewURL:  "/preview/" + j.ID + "/",
		DownloadURL: "/download/" + j.ID,
	}
}

// List returns the caller's jobs, newest first.
// @Summary List my portfolios
// @Tags    jobs
// @Produce json
// @Param   limit  query int false "page size (1..200, default 20)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ApiError
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 20)
	jobs, err := h.svc.List(c.UserContext(), jwt.UserID(c), limit, offset)
	if err != nil {
		return err
	}
	items := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, viewOf(j))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// Get returns one of the caller's jobs.
// @Summary Get my portfolio
// @Tags    jobs
// @Produce json
// @Param   job_id path string true "Job id"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ApiError
// @Failure 404 {object} presenter.ApiError
// @Router  /jobs/{job_id} [get]
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	j, err := h.svc.GetForOwner(c.UserContext(), jwt.UserID(c), c.Params("job_id"))
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			return presenter.ErrNotFound("job not found")
		}
		return err
	}
	return presenter.JSON(c, http.StatusOK, viewOf(j))
}

// Delete removes one of the caller's jobs and its files.
// @Summary Delete my portfolio
// @Tags    jobs
// @Param   job_id path string true "Job id"
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} presenter.ApiError
// @Failure 404 {object} presenter.ApiError
// @Router  /jobs/{job_id} [delete]
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), jwt.UserID(c), c.Params("job_id")); err != nil {
		if errors.Is(err, site.ErrNotFound) {
			return presenter.ErrNotFound("job not found")
		}
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
