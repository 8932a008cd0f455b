package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"garage-api/internal/domain"
	"garage-api/internal/service"
)

type vehicleRequest struct {
	Name             string      `json:"name"`
	Brand            string      `json:"brand"`
	RegistrationDate domain.Date `json:"registrationDate"`
}

func bindVehicle(c *gin.Context) (service.VehicleInput, bool) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// covers malformed JSON and dates that are not yyyy-MM-dd
		badRequest(c, "invalid request body: "+err.Error())
		return service.VehicleInput{}, false
	}
	return service.VehicleInput{
		Name:             req.Name,
		Brand:            req.Brand,
		RegistrationDate: req.RegistrationDate,
	}, true
}

func (h *Handler) createVehicle(c *gin.Context) {
	in, ok := bindVehicle(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.auditLog(c, "vehicle created", vehicle.ID)

	c.Header("Location", fmt.Sprintf("/veiculos/%d", vehicle.ID))
	c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) listVehicles(c *gin.Context) {
	page, err := h.vehicles.List(c.Request.Context(), pageParam(c), service.VehicleFilter{
		Name:  c.Query("nome"),
		Brand: c.Query("marca"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page.Items)
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindVehicle(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.auditLog(c, "vehicle updated", vehicle.ID)
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.auditLog(c, "vehicle deleted", id)
	c.Status(http.StatusNoContent)
}
