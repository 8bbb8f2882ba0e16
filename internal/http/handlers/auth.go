package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/service"
)

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

// Register creates an account. Anonymous callers always get role=user; an
// admin calling with their token may set the role (the admin user-management
// screen creates accounts through this endpoint).
func (h *Handler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, _ := actorFrom(c) // zero actor when anonymous

	u, err := h.Users.Register(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := service.GenerateJWT(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userJSON(u)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := service.GenerateJWT(u.ID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": userJSON(u)})
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	u, err := h.Users.Get(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(u)})
}

func (h *Handler) ListUsers(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	users, err := h.Users.List(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.Users.Delete(c.Request.Context(), actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
