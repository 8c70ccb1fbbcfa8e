package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/AdmissionDesk/internal/models"
)

const (
	insertInquiryQuery = `INSERT INTO inquiries (id, studname, parentname, email, phone, grade, year_of_passing, pschool, referral, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	selectInquiriesQuery = `SELECT id, studname, parentname, email, phone, grade, year_of_passing, pschool, referral, created_at
		FROM inquiries ORDER BY seq`
)

// PostgresInquiryRepository stores admission inquiries in PostgreSQL.
type PostgresInquiryRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresInquiryRepository creates a repository over the given connection.
func NewPostgresInquiryRepository(db *sql.DB) *PostgresInquiryRepository {
	return &PostgresInquiryRepository{DB: db}
}

// CreateInquiry inserts a single inquiry.
func (r *PostgresInquiryRepository) CreateInquiry(ctx context.Context, in models.Inquiry) error {
	_, err := r.DB.ExecContext(ctx, insertInquiryQuery,
		in.ID, in.StudentName, in.ParentName, in.Email, in.Phone,
		in.Grade, in.YearOfPassing, in.PriorSchool, in.ReferralSource, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateInquiry: %w", err)
	}
	return nil
}

// ListInquiries returns every stored inquiry in insertion order.
func (r *PostgresInquiryRepository) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := r.DB.QueryContext(ctx, selectInquiriesQuery)
	if err != nil {
		return nil, fmt.Errorf("ListInquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]models.Inquiry, 0)
	for rows.Next() {
		var in models.Inquiry
		if err := rows.Scan(
			&in.ID, &in.StudentName, &in.ParentName, &in.Email, &in.Phone,
			&in.Grade, &in.YearOfPassing, &in.PriorSchool, &in.ReferralSource, &in.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		inquiries = append(inquiries, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListInquiries: %w", err)
	}
	return inquiries, nil
}
