// Local-state HTTP handlers.
//
// This file exposes REST endpoints for the state the form keeps between
// visits:
//   - GET/PUT/DELETE /draft       (in-progress form fields)
//   - GET/PUT        /material    (selected waste material)
//   - DELETE         /local-data  (full local reset)
//
// Drafts are stored as typed, unvalidated input; validation happens only
// at submission time.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecopots/go-registration-backend/internal/services"
)

// GetDraft godoc
// @ID          getDraft
// @Summary     Get the stored draft
// @Tags        Local state
// @Produce     json
//
// @Success     200  {object}  map[string]string
// @Failure     404  {object}  handlers.ErrorResponse  "No draft stored"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /draft [get]
func (h *Handlers) GetDraft(c *gin.Context) {
	fields, err := h.storeSvc.Draft(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no draft stored")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, fields)
}

// SaveDraft godoc
// @ID          saveDraft
// @Summary     Store the in-progress form fields
// @Description Accepts a flat JSON object of field name → typed value. Drafts are never validated; an incomplete or invalid draft is stored as-is.
// @Tags        Local state
// @Accept      json
//
// @Param       body  body  map[string]string  true  "Draft fields"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /draft [put]
func (h *Handlers) SaveDraft(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "draft must be a flat JSON object of strings")
		return
	}

	if err := h.storeSvc.SaveDraft(c.Request.Context(), fields); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ClearDraft godoc
// @ID          clearDraft
// @Summary     Remove the stored draft
// @Description Clearing an absent draft succeeds.
// @Tags        Local state
//
// @Success     204  {string}  string  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /draft [delete]
func (h *Handlers) ClearDraft(c *gin.Context) {
	if err := h.storeSvc.ClearDraft(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// GetMaterial godoc
// @ID          getMaterial
// @Summary     Get the selected material
// @Tags        Local state
// @Produce     json
//
// @Success     200  {object}  services.MaterialSelection
// @Failure     404  {object}  handlers.ErrorResponse  "No material selected"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /material [get]
func (h *Handlers) GetMaterial(c *gin.Context) {
	sel, err := h.storeSvc.SelectedMaterial(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no material selected")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sel)
}

// SelectMaterial godoc
// @ID          selectMaterial
// @Summary     Store a material choice
// @Tags        Local state
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SelectMaterialRequest  true  "Material slug"
//
// @Success     200  {object}  services.MaterialSelection
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     422  {object}  handlers.ErrorResponse  "Slug outside the catalog"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /material [put]
func (h *Handlers) SelectMaterial(c *gin.Context) {
	var req SelectMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body must carry a material slug")
		return
	}

	sel, err := h.storeSvc.SelectMaterial(c.Request.Context(), req.Slug)
	if err != nil {
		if errors.Is(err, services.ErrUnknownMaterial) {
			fail(c, http.StatusUnprocessableEntity, ErrCodeUnknownMaterial, "unknown material slug")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sel)
}

// ClearLocalData godoc
// @ID          clearLocalData
// @Summary     Wipe all locally held registration state
// @Description Removes the confirmed log, the retry queue, manual backups, the draft, and the material selection.
// @Tags        Local state
//
// @Success     204  {string}  string  "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /local-data [delete]
func (h *Handlers) ClearLocalData(c *gin.Context) {
	if err := h.storeSvc.ClearAll(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
