package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgxConn is the slice of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PgxConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db PgxConn
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db PgxConn) *PostgresRepository {
	if db == nil {
		panic("leads: pgx connection required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row carrying the fixed market/source tags.
func (r *PostgresRepository) Create(ctx context.Context, sub *LeadSubmission) (*StoredLead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id, nombre, email, telefono_pais, telefono_numero, rol, tamano, dolor, intereses, checklist, market, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		sub.Nombre,
		sub.Email,
		sub.TelefonoPais,
		sub.TelefonoNumero,
		sub.Rol,
		sub.Tamano,
		sub.Dolor,
		sub.Intereses,
		sub.Checklist,
		Market,
		Source,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &StoredLead{
		ID:             id.String(),
		Nombre:         sub.Nombre,
		Email:          sub.Email,
		TelefonoPais:   sub.TelefonoPais,
		TelefonoNumero: sub.TelefonoNumero,
		Rol:            sub.Rol,
		Tamano:         sub.Tamano,
		Dolor:          sub.Dolor,
		Intereses:      append([]string(nil), sub.Intereses...),
		Checklist:      sub.Checklist,
		Market:         Market,
		Source:         Source,
		CreatedAt:      createdAt,
	}, nil
}

var _ Repository = (*PostgresRepository)(nil)
