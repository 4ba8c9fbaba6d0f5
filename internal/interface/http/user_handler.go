package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/hobbylink/internal/application"
	"github.com/oksasatya/hobbylink/internal/domain"
	"github.com/oksasatya/hobbylink/pkg/response"
	"github.com/oksasatya/hobbylink/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Username string   `json:"username" binding:"required,min=1"`
	Age      *int     `json:"age" binding:"required"`
	Hobbies  []string `json:"hobbies"`
}

type updateUserRequest struct {
	Username *string   `json:"username" binding:"omitempty,min=1"`
	Age      *int      `json:"age"`
	Hobbies  *[]string `json:"hobbies"`
}

type linkRequest struct {
	FriendID string `json:"friendId" binding:"required"`
}

// respondError maps engine failure kinds onto HTTP statuses. Every typed
// failure is decided here once; handlers never inspect errors themselves.
func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", err.Error())
	case errors.Is(err, domain.ErrDuplicateUsername):
		response.Error[any](c, http.StatusBadRequest, "username already exists", err.Error())
	case errors.Is(err, domain.ErrSelfLink):
		response.Error[any](c, http.StatusBadRequest, "cannot link user to self", err.Error())
	case errors.Is(err, domain.ErrAlreadyLinked):
		response.Error[any](c, http.StatusConflict, "users are already linked", err.Error())
	case errors.Is(err, domain.ErrNotLinked):
		response.Error[any](c, http.StatusConflict, "users are not currently linked", err.Error())
	case errors.Is(err, domain.ErrHasActiveRelationships):
		response.Error[any](c, http.StatusConflict, "cannot delete user while connected to others, unlink first", err.Error())
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// List returns every user with freshly recomputed popularity scores.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListAllWithScores(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{
		Username: req.Username,
		Age:      *req.Age,
		Hobbies:  req.Hobbies,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), userapp.UpdateUserInput{
		Username: req.Username,
		Age:      req.Age,
		Hobbies:  req.Hobbies,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Link(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, b, err := h.Svc.Link(c.Request.Context(), c.Param("id"), req.FriendID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	msg := fmt.Sprintf("successfully linked %s and %s", a.Username, b.Username)
	response.Success[any](c, http.StatusOK, gin.H{"linked": true}, msg, nil)
}

func (h *UserHandler) Unlink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Unlink(c.Request.Context(), c.Param("id"), req.FriendID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	msg := fmt.Sprintf("successfully unlinked %s and user %s", a.Username, req.FriendID)
	response.Success[any](c, http.StatusOK, gin.H{"unlinked": true}, msg, nil)
}

// Graph returns the deduplicated node/edge projection for the client canvas.
func (h *UserHandler) Graph(c *gin.Context) {
	graph, err := h.Svc.Graph(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, graph, "graph", nil)
}

// Search queries the Elasticsearch user index.
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
