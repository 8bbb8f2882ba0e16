package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	users := newMemUserDirectory()
	tasks := newMemTaskStore()
	svc := NewUserService(users, tasks)
	ctx := context.Background()

	u, err := svc.Register(ctx, domain.Actor{}, RegisterInput{
		Name:     "Dana",
		Email:    "Dana@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "dana@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.Role != domain.RoleUser {
		t.Errorf("role = %q; want user", u.Role)
	}
	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Errorf("password stored poorly: %q", u.PasswordHash)
	}

	got, err := svc.Authenticate(ctx, "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated as %d; want %d", got.ID, u.ID)
	}

	if _, err := svc.Authenticate(ctx, "dana@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newMemUserDirectory(), newMemTaskStore())

	_, err := svc.Register(context.Background(), domain.Actor{}, RegisterInput{
		Name:     " ",
		Email:    "not-an-email",
		Password: "abc",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("got %d violations (%v); want 3", len(verr.Fields), verr.Fields)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newMemUserDirectory(), newMemTaskStore())
	ctx := context.Background()

	in := RegisterInput{Name: "Dana", Email: "dana@example.com", Password: "hunter22"}
	if _, err := svc.Register(ctx, domain.Actor{}, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, domain.Actor{}, in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("second register: got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRoleEscalation(t *testing.T) {
	users := newMemUserDirectory()
	svc := NewUserService(users, newMemTaskStore())
	ctx := context.Background()
	adminUser := seedUser(users, "root", domain.RoleAdmin)
	admin := domain.Actor{ID: adminUser.ID, Role: adminUser.Role}

	// anonymous self-registration cannot pick a role
	u, err := svc.Register(ctx, domain.Actor{}, RegisterInput{
		Name: "Mallory", Email: "mallory@example.com", Password: "hunter22",
		Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("anonymous registration granted role %q", u.Role)
	}

	// an admin may
	u2, err := svc.Register(ctx, admin, RegisterInput{
		Name: "Ops", Email: "ops@example.com", Password: "hunter22",
		Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}
	if u2.Role != domain.RoleAdmin {
		t.Fatalf("admin-created user role = %q; want admin", u2.Role)
	}
}

func TestUserListAndDeleteRequireAdmin(t *testing.T) {
	users := newMemUserDirectory()
	tasks := newMemTaskStore()
	svc := NewUserService(users, tasks)
	ctx := context.Background()

	adminUser := seedUser(users, "root", domain.RoleAdmin)
	plainUser := seedUser(users, "plain", domain.RoleUser)
	admin := domain.Actor{ID: adminUser.ID, Role: adminUser.Role}
	plain := domain.Actor{ID: plainUser.ID, Role: plainUser.Role}

	if _, err := svc.List(ctx, plain); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("plain list: got %v, want ErrForbidden", err)
	}
	all, err := svc.List(ctx, admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin list returned %d users; want 2", len(all))
	}

	if err := svc.Delete(ctx, plain, adminUser.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("plain delete: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, admin, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete missing: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, admin, plainUser.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}

func TestDeleteRefusedWhileTasksAssigned(t *testing.T) {
	users := newMemUserDirectory()
	tasks := newMemTaskStore()
	userSvc := NewUserService(users, tasks)
	taskSvc := NewTaskService(tasks, users)
	ctx := context.Background()

	adminUser := seedUser(users, "root", domain.RoleAdmin)
	worker := seedUser(users, "worker", domain.RoleUser)
	admin := domain.Actor{ID: adminUser.ID, Role: adminUser.Role}

	created, err := taskSvc.Create(ctx, admin, domain.TaskDraft{
		Title: "t", Description: "d", DueDate: "2026-10-01", AssignedTo: worker.ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := userSvc.Delete(ctx, admin, worker.ID); !errors.Is(err, domain.ErrUserHasTasks) {
		t.Fatalf("delete assigned user: got %v, want ErrUserHasTasks", err)
	}

	if err := taskSvc.Delete(ctx, admin, created.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := userSvc.Delete(ctx, admin, worker.ID); err != nil {
		t.Fatalf("delete unassigned user: %v", err)
	}
}
