package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type GalaxyHandler struct {
	service *galaxy.Service
}

func NewGalaxyHandler(service *galaxy.Service) *GalaxyHandler {
	return &GalaxyHandler{service: service}
}

func (h *GalaxyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, h.service.Summary())
}

func (h *GalaxyHandler) Stars(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "galaxy_stars")

	page, err := parsePage(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := h.service.Stars(page)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

func (h *GalaxyHandler) Haze(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "galaxy_haze")

	page, err := parsePage(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := h.service.Haze(page)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

func parsePage(r *http.Request) (galaxy.Page, error) {
	var page galaxy.Page
	query := r.URL.Query()

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return page, errors.WrapValidation("invalid offset", err)
		}
		page.Offset = offset
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return page, errors.WrapValidation("invalid limit", err)
		}
		if limit == 0 {
			return page, errors.Validation("limit must be positive")
		}
		page.Limit = limit
	}

	if v := query.Get("camera"); v != "" {
		camera, err := ParseVec3(v)
		if err != nil {
			return page, err
		}
		page.Camera = &camera
	}

	return page, nil
}

// ParseVec3 reads "x,y,z".
func ParseVec3(s string) (procgen.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return procgen.Vec3{}, errors.Validationf("expected x,y,z, got %q", s)
	}

	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return procgen.Vec3{}, errors.WrapValidation("invalid coordinate", err)
		}
		coords[i] = v
	}

	return procgen.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
