package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/presenter"
)

// ThemeLister is satisfied by *portfolio.Renderer.
type ThemeLister interface {
	Themes() ([]string, error)
}

type ThemesHandler struct {
	themes ThemeLister
}

func NewThemesHandler(themes ThemeLister) *ThemesHandler { return &ThemesHandler{themes: themes} }

// List returns the installed themes.
// @Summary List themes
// @Tags    portfolio
// @Produce json
// @Success 200 {object} map[string][]string
// @Router  /themes [get]
func (h *ThemesHandler) List(c *fiber.Ctx) error {
	names, err := h.themes.Themes()
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"themes": names})
}
