package repositories

import (
	"context"
	"time"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Cancel cancels an appointment
	Cancel(ctx context.Context, id string) error

	// ListByDoctor retrieves appointments for a doctor
	ListByDoctor(ctx context.Context, doctorID int, filter AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	Status entities.AppointmentStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
