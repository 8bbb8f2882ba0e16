package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/http/middleware"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/repository"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/service"
)

type Handler struct {
	DB    *pgxpool.Pool
	Tasks *service.TaskService
	Users *service.UserService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	return &Handler{
		DB:    db,
		Tasks: service.NewTaskService(taskRepo, userRepo),
		Users: service.NewUserService(userRepo, taskRepo),
	}
}

func actorFrom(c *gin.Context) (domain.Actor, bool) {
	return middleware.Actor(c)
}

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is a store or programming failure and becomes a 500 without
// leaking its message.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, domain.ErrAssigneeNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUserHasTasks):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
