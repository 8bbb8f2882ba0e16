package service

import (
	"context"
	"sort"
	"time"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
)

// memTaskStore keeps tasks in a map, good enough to drive the service in
// unit tests without a database.
type memTaskStore struct {
	seq   int64
	tasks map[int64]*domain.Task
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[int64]*domain.Task)}
}

func (m *memTaskStore) Insert(_ context.Context, t *domain.Task) error {
	m.seq++
	t.ID = m.seq
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memTaskStore) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTaskStore) matches(t *domain.Task, f domain.TaskFilter) bool {
	if f.AssignedTo != 0 && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

func (m *memTaskStore) Find(_ context.Context, f domain.TaskFilter, limit, offset int) ([]*domain.Task, error) {
	var all []*domain.Task
	for _, t := range m.tasks {
		if m.matches(t, f) {
			cp := *t
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memTaskStore) Count(_ context.Context, f domain.TaskFilter) (int64, error) {
	var n int64
	for _, t := range m.tasks {
		if m.matches(t, f) {
			n++
		}
	}
	return n, nil
}

func (m *memTaskStore) Update(_ context.Context, t *domain.Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memTaskStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

type memUserDirectory struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemUserDirectory() *memUserDirectory {
	return &memUserDirectory{users: make(map[int64]*domain.User)}
}

func (m *memUserDirectory) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserDirectory) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserDirectory) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	m.seq++
	u.ID = m.seq
	u.CreatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserDirectory) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserDirectory) List(_ context.Context) ([]*domain.User, error) {
	var res []*domain.User
	for _, u := range m.users {
		cp := *u
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// seedUser adds a user directly to the directory, bypassing validation.
func seedUser(dir *memUserDirectory, name string, role domain.Role) *domain.User {
	u := &domain.User{
		Name:         name,
		Email:        name + "@example.com",
		Role:         role,
		PasswordHash: "x",
	}
	_ = dir.Create(context.Background(), u)
	return u
}
