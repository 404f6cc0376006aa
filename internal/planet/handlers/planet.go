package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"galaxy-server/internal/planet"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

const (
	maxPlanetBody = 4 << 20
	maxImportBody = 32 << 20
)

type PlanetHandler struct {
	service *planet.Service
}

func NewPlanetHandler(service *planet.Service) *PlanetHandler {
	return &PlanetHandler{service: service}
}

type createPlanetRequest struct {
	planet.Planet
	Edit bool `json:"edit"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.PayloadTooLargef("request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.WrapValidation("invalid JSON body", err)
	}
	return nil
}

func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_planets")

	planets, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, planets)
}

func (h *PlanetHandler) Editing(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "editing_planet")

	p, err := h.service.Editing(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if p == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response.Success(w, http.StatusOK, p)
}

func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_planet")

	var req createPlanetRequest
	if err := decodeJSON(w, r, maxPlanetBody, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Add(r.Context(), req.Planet, req.Edit)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, p)
}

func (h *PlanetHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_planet")

	name := r.PathValue("name")
	if name == "" {
		response.Error(w, r, logger, errors.Validation("planet name is required"))
		return
	}

	var p planet.Planet
	if err := decodeJSON(w, r, maxPlanetBody, &p); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), name, p)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, updated)
}

func (h *PlanetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_planet")

	if err := h.service.Remove(r.Context(), r.PathValue("name")); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanetHandler) Clear(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "clear_planets")

	count, err := h.service.Clear(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, countResponse{Count: count})
}

func (h *PlanetHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "confirm_planet")

	var pos procgen.Vec3
	if err := decodeJSON(w, r, maxPlanetBody, &pos); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.ConfirmPosition(r.Context(), r.PathValue("name"), pos)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p)
}

func (h *PlanetHandler) EditAll(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "edit_all_planets")

	count, err := h.service.EditAll(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, countResponse{Count: count})
}

func (h *PlanetHandler) Export(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "export_planets")

	doc, err := h.service.Export(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.Header().Set("Content-Disposition",
		`attachment; filename="galaxy_export_`+doc.ExportDate.Format("2006-01-02")+`.json"`)
	response.Success(w, http.StatusOK, doc)
}

func (h *PlanetHandler) Import(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "import_planets")

	var doc planet.ExportDocument
	if err := decodeJSON(w, r, maxImportBody, &doc); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	count, err := h.service.Import(r.Context(), doc)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, countResponse{Count: int64(count)})
}
