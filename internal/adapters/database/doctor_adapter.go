package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
	"github.com/carelink-cm/carelink-backend/pkg/utils"
)

var doctorColumns = []interface{}{
	"id", "first_name", "last_name", "specialty", "city", "location",
	"latitude", "longitude", "consultation_fee", "rating", "experience",
	"available", "available_slots", "email", "phone", "education",
}

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new doctor record
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	query, args, err := a.db.Insert("doctors").Rows(doctorRecord(doctor)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}
	return nil
}

// GetByID retrieves a doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id int) (*entities.Doctor, error) {
	query, args, err := a.db.From("doctors").
		Select(doctorColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	doctor, err := scanDoctor(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}
	return doctor, nil
}

// Update updates a doctor record
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	query, args, err := a.db.Update("doctors").
		Set(doctorRecord(doctor)).
		Where(goqu.Ex{"id": doctor.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update doctor", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor %d not found", doctor.ID))
	}
	return nil
}

// Delete deletes a doctor record
func (a *DoctorAdapter) Delete(ctx context.Context, id int) error {
	query, args, err := a.db.Delete("doctors").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete doctor", err)
	}
	return nil
}

// List retrieves doctors with coarse filters applied in the database
func (a *DoctorAdapter) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	ds := a.db.From("doctors").Select(doctorColumns...)

	if filter.City != "" {
		ds = ds.Where(goqu.L("LOWER(city) LIKE LOWER(?)", "%"+filter.City+"%"))
	}
	if filter.Specialty != "" {
		ds = ds.Where(goqu.L("LOWER(specialty) LIKE LOWER(?)", "%"+filter.Specialty+"%"))
	}

	ds = ds.Order(goqu.I("rating").Desc(), goqu.I("experience").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []*entities.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate doctors", err)
	}
	return doctors, nil
}

func doctorRecord(doctor *entities.Doctor) goqu.Record {
	record := goqu.Record{
		"id":               doctor.ID,
		"first_name":       doctor.FirstName,
		"last_name":        doctor.LastName,
		"specialty":        doctor.Specialty,
		"city":             doctor.City,
		"location":         doctor.Location,
		"consultation_fee": doctor.ConsultationFee,
		"rating":           doctor.Rating,
		"experience":       doctor.Experience,
		"available":        doctor.Available,
		"available_slots":  pq.Array(doctor.AvailableSlots),
		"email":            doctor.Email,
		"phone":            doctor.Phone,
		"education":        doctor.Education,
	}
	if doctor.Coordinates != nil {
		record["latitude"] = doctor.Coordinates.Latitude
		record["longitude"] = doctor.Coordinates.Longitude
	} else {
		record["latitude"] = nil
		record["longitude"] = nil
	}
	return record
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDoctor rebuilds the derived fields (Name, Specialties) that are not
// stored as columns.
func scanDoctor(row rowScanner) (*entities.Doctor, error) {
	var (
		doctor   entities.Doctor
		lat, lng sql.NullFloat64
		slots    pq.StringArray
	)

	err := row.Scan(
		&doctor.ID,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Specialty,
		&doctor.City,
		&doctor.Location,
		&lat,
		&lng,
		&doctor.ConsultationFee,
		&doctor.Rating,
		&doctor.Experience,
		&doctor.Available,
		&slots,
		&doctor.Email,
		&doctor.Phone,
		&doctor.Education,
	)
	if err != nil {
		return nil, err
	}

	doctor.Name = fmt.Sprintf("Dr. %s %s", doctor.FirstName, doctor.LastName)
	doctor.Specialties = utils.SplitSpecialties(doctor.Specialty)
	doctor.AvailableSlots = []string(slots)
	if doctor.AvailableSlots == nil {
		doctor.AvailableSlots = []string{}
	}
	if lat.Valid && lng.Valid {
		doctor.Coordinates = &entities.Location{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	return &doctor, nil
}
