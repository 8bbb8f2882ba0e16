package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/policy"
)

// TaskStore is the persistence surface the task service needs. Implemented
// by repository.TaskRepository in production and by an in-memory store in
// tests. A single call is atomic; the service performs no optimistic
// concurrency check on top, so concurrent updates interleave last-write-wins
// per field.
type TaskStore interface {
	Insert(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Find(ctx context.Context, f domain.TaskFilter, limit, offset int) ([]*domain.Task, error)
	Count(ctx context.Context, f domain.TaskFilter) (int64, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// UserDirectory is the user lookup surface shared by the task and user
// services.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
}

type TaskService struct {
	tasks TaskStore
	users UserDirectory
}

func NewTaskService(tasks TaskStore, users UserDirectory) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

const (
	defaultPageSize = 10
	dueDateLayout   = "2006-01-02"
)

// parseDueDate accepts RFC3339 timestamps or a plain calendar date.
func parseDueDate(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse(dueDateLayout, s)
}

func (s *TaskService) Create(ctx context.Context, actor domain.Actor, draft domain.TaskDraft) (*domain.ResolvedTask, error) {
	if !policy.Decide(actor, policy.CreateTask{}, nil) {
		return nil, domain.ErrForbidden
	}

	var verr domain.ValidationError
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		verr.Add("title", "Title is required")
	}
	description := strings.TrimSpace(draft.Description)
	if description == "" {
		verr.Add("description", "Description is required")
	}
	dueDate, err := parseDueDate(draft.DueDate)
	if err != nil {
		verr.Add("due_date", "Valid due date is required")
	}
	if draft.AssignedTo == 0 {
		verr.Add("assigned_to", "Assigned user is required")
	}
	prio := draft.Priority
	if prio == "" {
		prio = domain.PriorityMedium
	} else if !prio.Valid() {
		verr.Add("priority", "Priority must be one of low, medium, high, urgent")
	}
	if !verr.Empty() {
		return nil, &verr
	}

	assignee, err := s.users.GetByID(ctx, draft.AssignedTo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("resolve assignee: %w", err)
	}

	t := &domain.Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    prio,
		Status:      domain.StatusPending,
		AssignedTo:  assignee.ID,
		CreatedBy:   actor.ID,
	}
	if err := s.tasks.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.resolve(ctx, t)
}

// TaskPage is one page of resolved tasks plus pagination totals.
type TaskPage struct {
	Tasks      []*domain.ResolvedTask `json:"tasks"`
	Page       int                    `json:"current_page"`
	TotalPages int                    `json:"total_pages"`
	Total      int64                  `json:"total_tasks"`
}

// List returns the actor's page of tasks. Non-admins only ever see tasks
// assigned to them, whatever filter they pass.
func (s *TaskService) List(ctx context.Context, actor domain.Actor, f domain.TaskFilter, page, pageSize int) (*TaskPage, error) {
	if !policy.Decide(actor, policy.ListTasks{}, nil) {
		return nil, domain.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if !actor.IsAdmin() {
		f.AssignedTo = actor.ID
	}

	total, err := s.tasks.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	tasks, err := s.tasks.Find(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	resolved := make([]*domain.ResolvedTask, 0, len(tasks))
	summaries := make(map[int64]domain.UserSummary)
	for _, t := range tasks {
		rt, err := s.resolveCached(ctx, t, summaries)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rt)
	}

	return &TaskPage{
		Tasks:      resolved,
		Page:       page,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Total:      total,
	}, nil
}

func (s *TaskService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.ResolvedTask, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !policy.Decide(actor, policy.ReadTask{}, t) {
		return nil, domain.ErrForbidden
	}
	return s.resolve(ctx, t)
}

// Update applies the fields present in patch and persists the result.
// Present-but-empty values are skipped, not applied as clears. Status moves
// freely between any two values; there is no transition graph.
func (s *TaskService) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.TaskPatch) (*domain.ResolvedTask, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !policy.Decide(actor, policy.UpdateTask{Reassign: patch.Reassigns()}, t) {
		return nil, domain.ErrForbidden
	}

	var verr domain.ValidationError
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDate != nil && *patch.DueDate != "" {
		dueDate, err := parseDueDate(*patch.DueDate)
		if err != nil {
			verr.Add("due_date", "Valid due date is required")
		} else {
			t.DueDate = dueDate
		}
	}
	if patch.Status != nil && *patch.Status != "" {
		if !patch.Status.Valid() {
			verr.Add("status", "Status must be one of pending, in-progress, completed")
		} else {
			t.Status = *patch.Status
		}
	}
	if patch.Priority != nil && *patch.Priority != "" {
		if !patch.Priority.Valid() {
			verr.Add("priority", "Priority must be one of low, medium, high, urgent")
		} else {
			t.Priority = *patch.Priority
		}
	}
	if !verr.Empty() {
		return nil, &verr
	}

	if patch.Reassigns() {
		// The policy already denies a reassigning patch for non-admins;
		// this guard stands on its own so the rule survives any future
		// change to the generic check.
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		assignee, err := s.users.GetByID(ctx, *patch.AssignedTo)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("resolve assignee: %w", err)
		}
		t.AssignedTo = assignee.ID
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.resolve(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get task: %w", err)
	}
	if !policy.Decide(actor, policy.DeleteTask{}, t) {
		return domain.ErrForbidden
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskService) resolve(ctx context.Context, t *domain.Task) (*domain.ResolvedTask, error) {
	return s.resolveCached(ctx, t, make(map[int64]domain.UserSummary))
}

// resolveCached expands user references to summaries, memoizing lookups
// within one listing. A dangling reference (user deleted after the task was
// written) degrades to a bare id rather than failing the whole read.
func (s *TaskService) resolveCached(ctx context.Context, t *domain.Task, summaries map[int64]domain.UserSummary) (*domain.ResolvedTask, error) {
	lookup := func(id int64) (domain.UserSummary, error) {
		if sum, ok := summaries[id]; ok {
			return sum, nil
		}
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				sum := domain.UserSummary{ID: id}
				summaries[id] = sum
				return sum, nil
			}
			return domain.UserSummary{}, fmt.Errorf("resolve user %d: %w", id, err)
		}
		summaries[id] = u.Summary()
		return summaries[id], nil
	}

	assignedTo, err := lookup(t.AssignedTo)
	if err != nil {
		return nil, err
	}
	createdBy, err := lookup(t.CreatedBy)
	if err != nil {
		return nil, err
	}

	return &domain.ResolvedTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}, nil
}
