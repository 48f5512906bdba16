package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dakshininfra/purchase-api/models"
)

// @Summary List schemes for a project.
// @Description fetch the investment schemes offered on a project from the scheme catalog service.
// @Tags schemes
// @Param project_id path string true "Project ID"
// @Produce json
// @Success 200 {object} []models.Scheme
// @Router /api/core/projects/:project_id/schemes [get]
func GetProjectSchemes(h *Handler, schemeUrl string) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		projectId := c.Params("project_id")
		url := fmt.Sprintf("%s/projects/%s/schemes", schemeUrl, projectId)
		schemes, err := catalogListSchemes(h, url)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadGateway, "error", "failed fetching project schemes", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "project schemes", schemes)
	}
}

// @Summary Get a single scheme.
// @Description fetch one scheme by id from the scheme catalog service.
// @Tags schemes
// @Param id path string true "Scheme ID"
// @Produce json
// @Success 200 {object} models.Scheme
// @Router /api/core/schemes/:id [get]
func GetScheme(h *Handler, schemeUrl string) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		scheme, err := catalogGetScheme(h, fmt.Sprintf("%s/schemes/%s", schemeUrl, id))
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadGateway, "error", "failed fetching scheme", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "scheme", scheme)
	}
}

func catalogListSchemes(h *Handler, url string) ([]models.Scheme, error) {
	resp, err := h.H.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scheme catalog returned status %d", resp.StatusCode)
	}

	var result models.ListSchemesResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Schemes, nil
}

func catalogGetScheme(h *Handler, url string) (*models.Scheme, error) {
	resp, err := h.H.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scheme catalog returned status %d", resp.StatusCode)
	}

	var result models.Scheme
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
