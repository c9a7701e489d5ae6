package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a scheduled consultation with a doctor
type Appointment struct {
	ID           string            `json:"id" db:"id"`
	DoctorID     int               `json:"doctor_id" db:"doctor_id"`
	Slot         string            `json:"slot" db:"slot"`
	ScheduledAt  time.Time         `json:"scheduled_at" db:"scheduled_at"`
	Status       AppointmentStatus `json:"status" db:"status"`
	PatientName  string            `json:"patient_name" db:"patient_name"`
	PatientEmail string            `json:"patient_email" db:"patient_email"`
	PatientPhone string            `json:"patient_phone" db:"patient_phone"`
	Reason       string            `json:"reason" db:"reason"`
	IsVideo      bool              `json:"is_video" db:"is_video"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}
