package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	db *sqlx.DB
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	now := time.Now()
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.Status == "" {
		appointment.Status = entities.AppointmentStatusPending
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = now
	}
	appointment.UpdatedAt = now

	query := `
		INSERT INTO appointments (
			id, doctor_id, slot, scheduled_at, status,
			patient_name, patient_email, patient_phone,
			reason, is_video, created_at, updated_at
		) VALUES (
			:id, :doctor_id, :slot, :scheduled_at, :status,
			:patient_name, :patient_email, :patient_phone,
			:reason, :is_video, :created_at, :updated_at
		)
	`

	if _, err := a.db.NamedExecContext(ctx, query, appointment); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	var appointment entities.Appointment
	err := a.db.GetContext(ctx, &appointment, `SELECT * FROM appointments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	return &appointment, nil
}

// Cancel marks an appointment as cancelled
func (a *AppointmentAdapter) Cancel(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`,
		entities.AppointmentStatusCancelled, time.Now(), id,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to cancel appointment", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment %s not found", id))
	}
	return nil
}

// ListByDoctor retrieves appointments for a doctor, newest first
func (a *AppointmentAdapter) ListByDoctor(ctx context.Context, doctorID int, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	query := `SELECT * FROM appointments WHERE doctor_id = $1`
	args := []interface{}{doctorID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND scheduled_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND scheduled_at < $%d", len(args))
	}

	query += " ORDER BY scheduled_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var appointments []*entities.Appointment
	if err := a.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	return appointments, nil
}
