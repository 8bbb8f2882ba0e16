package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, due_date, priority, status, assigned_to, created_by, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Priority,
		&t.Status,
		&t.AssignedTo,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, due_date, priority, status, assigned_to, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.AssignedTo, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

// filterClause builds the WHERE clause for f. Zero-valued fields add no
// condition.
func filterClause(f domain.TaskFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.AssignedTo != 0 {
		add("assigned_to = $%d", f.AssignedTo)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Priority != "" {
		add("priority = $%d", f.Priority)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *TaskRepository) Find(ctx context.Context, f domain.TaskFilter, limit, offset int) ([]*domain.Task, error) {
	where, args := filterClause(f)
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT `+taskColumns+` FROM tasks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Count(ctx context.Context, f domain.TaskFilter) (int64, error) {
	where, args := filterClause(f)
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&n)
	return n, err
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, due_date = $3, priority = $4, status = $5, assigned_to = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING updated_at`,
		t.Title, t.Description, t.DueDate, t.Priority, t.Status, t.AssignedTo, t.ID,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
