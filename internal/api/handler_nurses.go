package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nurse-directory/internal/model"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createNurseRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
	Profile  []byte `json:"profile"`
}

func (r createNurseRequest) nurse() model.Nurse {
	return model.Nurse{
		Name:     r.Name,
		Surname:  r.Surname,
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
		Profile:  r.Profile,
	}.Normalized()
}

// updateNurseRequest is a full replacement. A blank password keeps the old one.
type updateNurseRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"user" binding:"required"`
	Password string `json:"password"`
	Profile  []byte `json:"profile"`
}

func (r updateNurseRequest) nurse() model.Nurse {
	return createNurseRequest(r).nurse()
}

func publicList(nurses []model.Nurse) []model.Nurse {
	out := make([]model.Nurse, 0, len(nurses))
	for _, n := range nurses {
		out = append(out, n.Public())
	}
	return out
}

// ListNurses handles GET /nurse/index.
func (h *Handler) ListNurses(c *gin.Context) {
	nurses, err := h.store.ListNurses(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicList(nurses))
}

// Login handles POST /nurse/login. The body is a bare JSON boolean.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, false)
		return
	}

	ok, err := h.store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		h.log.Info().Str("user", req.Username).Msg("login rejected")
		c.JSON(http.StatusUnauthorized, false)
		return
	}
	c.JSON(http.StatusOK, true)
}

// CreateNurse handles POST /nurse/new.
func (h *Handler) CreateNurse(c *gin.Context) {
	var req createNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.CreateNurse(c.Request.Context(), req.nurse())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info().Int64("id", created.ID).Str("user", created.Username).Msg("nurse registered")
	c.JSON(http.StatusCreated, created.Public())
}

// GetNurse handles GET /nurse/:id.
func (h *Handler) GetNurse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.store.GetNurse(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n.Public())
}

// FindByName handles GET /nurse/name/:name.
func (h *Handler) FindByName(c *gin.Context) {
	n, err := h.store.FindNurseByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n.Public())
}

// FindByUsername handles GET /nurse/user/:user.
func (h *Handler) FindByUsername(c *gin.Context) {
	n, err := h.store.FindNurseByUsername(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n.Public())
}

// UpdateNurse handles PUT /nurse/:id.
func (h *Handler) UpdateNurse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateNurse(c.Request.Context(), id, req.nurse())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated.Public())
}

// DeleteNurse handles DELETE /nurse/:id.
func (h *Handler) DeleteNurse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteNurse(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info().Int64("id", id).Msg("nurse deleted")
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nurse id"})
		return 0, false
	}
	return id, true
}
