package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-user-account-api/internal/domain"
	"go-user-account-api/internal/service"
	resp "go-user-account-api/internal/transport/http/response"
	"go-user-account-api/internal/validator"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// bindRequest returns nil for an absent or malformed body; the validator
// turns nil into its "Request body cannot be null" error.
func bindRequest(c *gin.Context) *domain.UserRequest {
	var req domain.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil
	}
	return &req
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		id = 0
	}
	if errs := validator.ValidateID(id); len(errs) > 0 {
		resp.Error(c, http.StatusBadRequest, strings.Join(errs, ", "))
		return 0, false
	}
	return id, true
}

func (h *UserHandler) Create(c *gin.Context) {
	out, err := h.svc.Create(bindRequest(c))
	if err != nil {
		resp.Fail(c, err, http.StatusBadRequest)
		return
	}
	resp.Created(c, "User created successfully", out)
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.svc.GetAll()
	if err != nil {
		resp.Fail(c, err, http.StatusInternalServerError)
		return
	}
	resp.List(c, len(users), users)
}

func (h *UserHandler) GetPaginated(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	sortBy := c.DefaultQuery("sortBy", "id")
	direction := c.DefaultQuery("direction", "asc")

	pr, err := h.svc.GetAllPaginated(page, size, sortBy, direction)
	if err != nil {
		resp.Fail(c, err, http.StatusInternalServerError)
		return
	}
	resp.Paged(c, pr.Content, pr.CurrentPage, pr.TotalPages, pr.TotalElements)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.svc.GetByID(id)
	if err != nil {
		resp.Fail(c, err, http.StatusNotFound)
		return
	}
	resp.OK(c, out)
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	out, err := h.svc.GetByEmail(c.Param("email"))
	if err != nil {
		resp.Fail(c, err, http.StatusNotFound)
		return
	}
	resp.OK(c, out)
}

func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.svc.SearchByName(c.Query("name"))
	if err != nil {
		resp.Fail(c, err, http.StatusInternalServerError)
		return
	}
	resp.List(c, len(users), users)
}

func (h *UserHandler) GetByRole(c *gin.Context) {
	users, err := h.svc.GetByRole(c.Param("role"))
	if err != nil {
		resp.Fail(c, err, http.StatusBadRequest)
		return
	}
	resp.List(c, len(users), users)
}

func (h *UserHandler) GetActive(c *gin.Context) {
	users, err := h.svc.GetActive()
	if err != nil {
		resp.Fail(c, err, http.StatusInternalServerError)
		return
	}
	resp.List(c, len(users), users)
}

func (h *UserHandler) Counts(c *gin.Context) {
	active, err := h.svc.CountActive()
	if err != nil {
		resp.Fail(c, err, http.StatusInternalServerError)
		return
	}
	total, err := h.svc.CountAll()
	if err != nil {
		resp.Fail(c, err, http.StatusInternalServerError)
		return
	}
	resp.OK(c, gin.H{"activeUsers": active, "totalUsers": total})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.svc.Update(id, bindRequest(c))
	if err != nil {
		resp.Fail(c, err, http.StatusBadRequest)
		return
	}
	resp.OKMessage(c, "User updated successfully", out)
}

func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.svc.ToggleStatus(id)
	if err != nil {
		resp.Fail(c, err, http.StatusBadRequest)
		return
	}
	resp.OKMessage(c, "User status updated successfully", out)
}

func (h *UserHandler) SoftDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.SoftDelete(id); err != nil {
		resp.Fail(c, err, http.StatusNotFound)
		return
	}
	resp.OKMessage(c, "User soft deleted successfully", nil)
}

func (h *UserHandler) HardDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.HardDelete(id); err != nil {
		resp.Fail(c, err, http.StatusNotFound)
		return
	}
	resp.OKMessage(c, "User permanently deleted", nil)
}
