package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/policy"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type UserService struct {
	users UserDirectory
	tasks TaskStore
}

func NewUserService(users UserDirectory, tasks TaskStore) *UserService {
	return &UserService{users: users, tasks: tasks}
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// Register creates a user. Only an admin actor may pick the role; a
// self-registration always gets role=user even if the request names one.
func (s *UserService) Register(ctx context.Context, actor domain.Actor, in RegisterInput) (*domain.User, error) {
	var verr domain.ValidationError
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "Name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailPattern.MatchString(email) {
		verr.Add("email", "Valid email is required")
	}
	if len(in.Password) < 6 {
		verr.Add("password", "Password must be at least 6 characters")
	}
	role := domain.RoleUser
	if in.Role != "" && policy.Decide(actor, policy.ManageUsers{}, nil) {
		if !in.Role.Valid() {
			verr.Add("role", "Role must be user or admin")
		} else {
			role = in.Role
		}
	}
	if !verr.Empty() {
		return nil, &verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies the credentials and returns the matching user. A
// missing account and a wrong password fail identically so the endpoint
// cannot be used to probe for registered emails.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if !policy.Decide(actor, policy.ManageUsers{}, nil) {
		return nil, domain.ErrForbidden
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes a user. It refuses while the user still has assigned tasks:
// nothing reassigns or tombstones them, so deleting would leave every one of
// those tasks pointing at a missing assignee.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !policy.Decide(actor, policy.ManageUsers{}, nil) {
		return domain.ErrForbidden
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	assigned, err := s.tasks.Count(ctx, domain.TaskFilter{AssignedTo: id})
	if err != nil {
		return fmt.Errorf("count assigned tasks: %w", err)
	}
	if assigned > 0 {
		return domain.ErrUserHasTasks
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
