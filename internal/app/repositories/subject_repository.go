package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mertdogan/campusdesk/internal/app/models"
	"github.com/mertdogan/campusdesk/internal/pkg/dberrors"
)

// Subject error types
var (
	ErrSubjectNotFound      = ErrNotFound
	ErrSubjectAlreadyExists = errors.New("subject with this code already exists in the course")
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const subjectColumns = "id, name, code, course_id, semester, credits, type, faculty_id, status"

func scanSubject(row pgx.Row) (*models.Subject, error) {
	subject := &models.Subject{}
	err := row.Scan(&subject.ID, &subject.Name, &subject.Code, &subject.CourseID,
		&subject.Semester, &subject.Credits, &subject.Type, &subject.FacultyID, &subject.Status)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// Create creates a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "code", "course_id", "semester", "credits", "type", "faculty_id", "status").
		Values(subject.Name, subject.Code, subject.CourseID, subject.Semester,
			subject.Credits, subject.Type, subject.FacultyID, subject.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}
	return subject, nil
}

// List retrieves subjects filtered by course, department and/or status.
// The department filter joins through courses for faculty assignment
// pickers that scope subjects by department.
func (r *SubjectRepository) List(ctx context.Context, courseID, departmentID int64, status models.EntityStatus) ([]*models.Subject, error) {
	builder := r.sb.Select(
		"s.id", "s.name", "s.code", "s.course_id", "s.semester",
		"s.credits", "s.type", "s.faculty_id", "s.status").
		From("subjects s").
		OrderBy("s.semester ASC", "s.name ASC")
	if courseID > 0 {
		builder = builder.Where(squirrel.Eq{"s.course_id": courseID})
	}
	if departmentID > 0 {
		builder = builder.Join("courses c ON s.course_id = c.id").
			Where(squirrel.Eq{"c.department_id": departmentID})
	}
	if status != "" {
		builder = builder.Where(squirrel.Eq{"s.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}
	return subjects, nil
}

// Update updates an existing subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		SetMap(map[string]interface{}{
			"name":       subject.Name,
			"code":       subject.Code,
			"semester":   subject.Semester,
			"credits":    subject.Credits,
			"type":       subject.Type,
			"faculty_id": subject.FacultyID,
		}).
		Where(squirrel.Eq{"id": subject.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error updating subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

// UpdateStatus sets the lifecycle status in a single statement.
func (r *SubjectRepository) UpdateStatus(ctx context.Context, id int64, status models.EntityStatus) error {
	sql, args, err := r.sb.Update("subjects").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating subject status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

// Delete deletes a subject by ID.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrSubjectNotFound
	}
	return nil
}
