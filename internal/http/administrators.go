package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"garage-api/internal/domain"
	"garage-api/internal/metrics"
	"garage-api/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string                      `json:"token"`
	ExpiresAt time.Time                   `json:"expiresAt"`
	User      domain.AdministratorSummary `json:"user"`
}

type administratorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type administratorPage struct {
	Total int                           `json:"total"`
	Items []domain.AdministratorSummary `json:"items"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		badRequest(c, "email and password are required")
		return
	}

	session, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			h.recordLogin(metrics.LoginRejected)
		}
		h.respondError(c, err)
		return
	}
	h.recordLogin(metrics.LoginSucceeded)

	c.JSON(http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

func (h *Handler) createAdministrator(c *gin.Context) {
	in, ok := bindAdministrator(c, true)
	if !ok {
		return
	}

	admin, err := h.admins.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.auditLog(c, "administrator created", admin.ID)

	c.Header("Location", fmt.Sprintf("/administradores/%d", admin.ID))
	c.JSON(http.StatusCreated, admin.Summary())
}

func (h *Handler) getAdministrator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	admin, err := h.admins.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin.Summary())
}

func (h *Handler) listAdministrators(c *gin.Context) {
	page, err := h.admins.List(c.Request.Context(), pageParam(c), service.AdministratorFilter{
		Name: c.Query("nome"),
		Role: c.Query("perfil"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, administratorPage{Total: page.Total, Items: page.Items})
}

func (h *Handler) updateAdministrator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindAdministrator(c, false)
	if !ok {
		return
	}

	admin, err := h.admins.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.auditLog(c, "administrator updated", admin.ID)
	c.JSON(http.StatusOK, admin.Summary())
}

func (h *Handler) deleteAdministrator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admins.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.auditLog(c, "administrator deleted", id)
	c.Status(http.StatusNoContent)
}

// bindAdministrator decodes the request body. The role is mandatory on
// create; on update an empty role keeps the stored one.
func bindAdministrator(c *gin.Context, roleRequired bool) (service.AdministratorInput, bool) {
	var req administratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return service.AdministratorInput{}, false
	}

	in := service.AdministratorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != "" || roleRequired {
		role, err := domain.ParseRole(req.Role)
		if err != nil {
			badRequest(c, domain.NewValidationError("role", "must be ADMIN or USER").Error())
			return service.AdministratorInput{}, false
		}
		in.Role = role
	}
	return in, true
}

func (h *Handler) auditLog(c *gin.Context, msg string, id int64) {
	fields := logrus.Fields{"id": id, "route": c.FullPath()}
	if claims, ok := claimsFrom(c); ok {
		fields["actor_id"] = claims.AdministratorID
	}
	h.logger.WithFields(fields).Info(msg)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// pageParam reads pagina; anything missing or malformed means the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("pagina"))
	if err != nil {
		return 1
	}
	return service.NormalizePage(page)
}
