package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const patientColumns = `id, name, email, phone, age, gender, password_hash,
	emergency_contact, blood_group, address, medical_history,
	is_approved, approved_at, created_at, updated_at`

// db is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it too.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores patients in the patients table.
type PostgresRepository struct {
	pool db
}

// NewPostgresRepository initializes a repository backed by pgxpool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("patients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create stores a new patient. Unique violations on email or phone map to
// the taken sentinels.
func (r *PostgresRepository) Create(ctx context.Context, p Patient) (Patient, error) {
	id := uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, email, phone, age, gender, password_hash,
			emergency_contact, blood_group, address, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, id, p.Name, p.Email, p.Phone, p.Age, p.Gender, p.PasswordHash,
		p.EmergencyContact, p.BloodGroup, p.Address, p.MedicalHistory,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "phone") {
				return Patient{}, ErrPhoneTaken
			}
			return Patient{}, ErrEmailTaken
		}
		return Patient{}, fmt.Errorf("patients: insert failed: %w", err)
	}

	p.ID = id.String()
	return p, nil
}

// GetByID returns a patient by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Patient, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Patient{}, ErrNotFound
	}
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, parsed))
}

// GetByEmail returns a patient by normalized email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Patient, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE email = $1`, email))
}

// List returns every patient, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Patient, error) {
	return r.list(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY created_at DESC`)
}

// ListPending returns patients awaiting approval, newest first.
func (r *PostgresRepository) ListPending(ctx context.Context) ([]Patient, error) {
	return r.list(ctx, `SELECT `+patientColumns+` FROM patients WHERE NOT is_approved ORDER BY created_at DESC`)
}

// Approve marks a patient approved and stamps approved_at.
func (r *PostgresRepository) Approve(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET is_approved = TRUE, approved_at = now(), updated_at = now()
		WHERE id = $1
	`, parsed)
	if err != nil {
		return fmt.Errorf("patients: approve failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Update modifies the admin-editable fields with COALESCE semantics.
func (r *PostgresRepository) Update(ctx context.Context, id string, update Update) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	var email *string
	if update.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*update.Email))
		email = &normalized
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    age = COALESCE($4, age),
		    gender = COALESCE($5, gender),
		    phone = COALESCE($6, phone),
		    updated_at = now()
		WHERE id = $1
	`, parsed, update.Name, email, update.Age, update.Gender, update.Phone)
	if err != nil {
		return fmt.Errorf("patients: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a patient.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, parsed)
	if err != nil {
		return fmt.Errorf("patients: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("patients: list failed: %w", err)
	}
	defer rows.Close()

	var out []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patients: iterate rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (Patient, error) {
	p, err := scanPatient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Patient{}, ErrNotFound
	}
	if err != nil {
		return Patient{}, err
	}
	return p, nil
}

func scanPatient(row pgx.Row) (Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Age, &p.Gender,
		&p.PasswordHash, &p.EmergencyContact, &p.BloodGroup, &p.Address,
		&p.MedicalHistory, &p.IsApproved, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Patient{}, err
	}
	if err != nil {
		return Patient{}, fmt.Errorf("patients: scan failed: %w", err)
	}
	return p, nil
}
