package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notemind-backend/internal/models"
)

type NoteRepo struct {
	pool *pgxpool.Pool
}

func NewNoteRepo(pool *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{pool: pool}
}

const noteColumns = `id, user_id, title, content, images, category_name, category_color,
	due_date, is_completed, completed_at, created_at, updated_at`

func (r *NoteRepo) Create(ctx context.Context, n *models.Note) error {
	n.ID = uuid.New()
	if n.Images == nil {
		n.Images = []string{}
	}

	var dueDate, completedAt *time.Time
	isCompleted := false
	if n.Completion != nil {
		dueDate = &n.Completion.DueDate
		isCompleted = n.Completion.IsCompleted
		completedAt = n.Completion.CompletedAt
	}

	query := `INSERT INTO notes (id, user_id, title, content, images, category_name, category_color,
		due_date, is_completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, n.Images, n.Category.Name, n.Category.Color,
		dueDate, isCompleted, completedAt,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

func (r *NoteRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Note, error) {
	query := fmt.Sprintf("SELECT %s FROM notes WHERE id = $1 AND user_id = $2", noteColumns)
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanNote(row)
}

func (r *NoteRepo) ListByUser(ctx context.Context, userID uuid.UUID, category string, isCompleted *bool) ([]*models.Note, error) {
	args := []interface{}{userID}
	where := "WHERE user_id = $1"

	if category != "" {
		args = append(args, category)
		where += fmt.Sprintf(" AND category_name = $%d", len(args))
	}
	if isCompleted != nil {
		args = append(args, *isCompleted)
		where += fmt.Sprintf(" AND is_completed = $%d AND due_date IS NOT NULL", len(args))
	}

	query := fmt.Sprintf("SELECT %s FROM notes %s ORDER BY created_at DESC", noteColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepo) Update(ctx context.Context, n *models.Note) error {
	var dueDate, completedAt *time.Time
	isCompleted := false
	if n.Completion != nil {
		dueDate = &n.Completion.DueDate
		isCompleted = n.Completion.IsCompleted
		completedAt = n.Completion.CompletedAt
	}

	query := `UPDATE notes SET title = $1, content = $2, images = $3, category_name = $4,
		category_color = $5, due_date = $6, is_completed = $7, completed_at = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		n.Title, n.Content, n.Images, n.Category.Name, n.Category.Color,
		dueDate, isCompleted, completedAt, n.ID, n.UserID,
	).Scan(&n.UpdatedAt)
}

func (r *NoteRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM notes WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Status aggregates a user's notes per category plus overall
// completed/pending counts for date-bearing notes.
func (r *NoteRepo) Status(ctx context.Context, userID uuid.UUID) (*models.NoteStatus, error) {
	status := &models.NoteStatus{ByCategory: make(map[string]int)}

	rows, err := r.pool.Query(ctx,
		"SELECT category_name, COUNT(*) FROM notes WHERE user_id = $1 GROUP BY category_name", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		status.ByCategory[name] = count
		status.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE is_completed),
			COUNT(*) FILTER (WHERE NOT is_completed)
		 FROM notes WHERE user_id = $1 AND due_date IS NOT NULL`, userID,
	).Scan(&status.Completed, &status.Pending)
	if err != nil {
		return nil, err
	}

	return status, nil
}

// DueReminder is a join row for the reminder scheduler: a due note plus
// its owner's contact details.
type DueReminder struct {
	NoteID  uuid.UUID
	Title   string
	DueDate time.Time
	Email   string
	Name    string
}

// ListDueForReminder returns incomplete date-bearing notes due within
// the window that have not been reminded yet.
func (r *NoteRepo) ListDueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]DueReminder, error) {
	query := `SELECT n.id, n.title, n.due_date, u.email, u.name
		FROM notes n
		JOIN users u ON u.id = n.user_id
		WHERE n.due_date IS NOT NULL
		  AND NOT n.is_completed
		  AND n.reminded_at IS NULL
		  AND n.due_date BETWEEN $1 AND $2
		ORDER BY n.due_date`

	rows, err := r.pool.Query(ctx, query, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []DueReminder
	for rows.Next() {
		var d DueReminder
		if err := rows.Scan(&d.NoteID, &d.Title, &d.DueDate, &d.Email, &d.Name); err != nil {
			return nil, err
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

func (r *NoteRepo) MarkReminded(ctx context.Context, noteID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, "UPDATE notes SET reminded_at = $1 WHERE id = $2", at, noteID)
	return err
}

func scanNote(row pgx.Row) (*models.Note, error) {
	n := &models.Note{}
	var dueDate, completedAt *time.Time
	var isCompleted bool

	err := row.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.Images, &n.Category.Name, &n.Category.Color,
		&dueDate, &isCompleted, &completedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate != nil {
		n.Completion = &models.Completion{
			DueDate:     *dueDate,
			IsCompleted: isCompleted,
			CompletedAt: completedAt,
		}
	}
	return n, nil
}
