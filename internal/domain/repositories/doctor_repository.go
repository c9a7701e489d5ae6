package repositories

import (
	"context"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor data operations
type DoctorRepository interface {
	// Create creates a new doctor record
	Create(ctx context.Context, doctor *entities.Doctor) error

	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id int) (*entities.Doctor, error)

	// Update updates a doctor record
	Update(ctx context.Context, doctor *entities.Doctor) error

	// Delete deletes a doctor record
	Delete(ctx context.Context, id int) error

	// List retrieves doctors with coarse filters applied in the database
	List(ctx context.Context, filter DoctorFilter) ([]*entities.Doctor, error)
}

// DoctorFilter defines coarse filters for listing doctors. Fine-grained
// search filtering happens in memory in the application layer.
type DoctorFilter struct {
	City      string
	Specialty string
	Limit     int
	Offset    int
}
