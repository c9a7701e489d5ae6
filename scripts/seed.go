package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carelink-cm/carelink-backend/internal/adapters/database"
	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/postgres"
	"github.com/carelink-cm/carelink-backend/pkg/config"
	"github.com/carelink-cm/carelink-backend/pkg/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS doctors (
	id INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	specialty TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	consultation_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	experience INTEGER NOT NULL DEFAULT 0,
	available BOOLEAN NOT NULL DEFAULT false,
	available_slots TEXT[] NOT NULL DEFAULT '{}',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	education TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS appointments (
	id UUID PRIMARY KEY,
	doctor_id INTEGER NOT NULL REFERENCES doctors(id),
	slot TEXT NOT NULL DEFAULT '',
	scheduled_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	patient_name TEXT NOT NULL,
	patient_email TEXT NOT NULL DEFAULT '',
	patient_phone TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL DEFAULT '',
	is_video BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS search_events (
	id UUID PRIMARY KEY,
	query TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	specialty TEXT NOT NULL DEFAULT '',
	result_count INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	session_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_search_events_created_at ON search_events (created_at DESC);
`

type seedDoctor struct {
	id        int
	first     string
	last      string
	specialty string
	city      string
	region    string
	fee       float64
	rating    float64
	years     int
	slots     []string
	phone     string
	education string
}

var seedDoctors = []seedDoctor{
	{1, "Jean", "Mballa", "Cardiologie", "Yaoundé", "Centre", 25000, 4.8, 15, []string{"09:00", "10:30", "14:00"}, "+237 699 01 02 03", "Faculté de Médecine de Yaoundé I"},
	{2, "Marie", "Ngo Bassa", "Pédiatrie", "Douala", "Littoral", 15000, 4.6, 9, []string{"08:30", "11:00"}, "+237 677 11 22 33", "Université de Douala"},
	{3, "Paul", "Essomba", "Cardiologie, Médecine interne", "Douala", "Littoral", 30000, 4.4, 20, nil, "+237 698 44 55 66", "CHU de Yaoundé"},
	{4, "Aline", "Fouda", "Dermatologie", "Yaoundé", "Centre", 18000, 4.2, 7, []string{"15:00"}, "+237 655 77 88 99", "Faculté de Médecine de Yaoundé I"},
	{5, "Samuel", "Kamga", "Gynécologie", "Bafoussam", "Ouest", 20000, 4.7, 12, []string{"09:00", "16:30"}, "+237 690 12 34 56", "Université des Montagnes"},
	{6, "Clarisse", "Tchoupo", "Médecine générale", "Yaoundé", "Centre", 10000, 4.0, 5, []string{"08:00", "09:00", "10:00", "11:00"}, "+237 671 98 76 54", "Université de Buéa"},
	{7, "Éric", "Njoya", "Ophtalmologie", "Douala", "Littoral", 42000, 4.9, 18, []string{"13:30"}, "+237 696 33 22 11", "Faculté de Médecine de Yaoundé I"},
	{8, "Brigitte", "Abena", "Pédiatrie, Néonatologie", "Garoua", "Nord", 12000, 4.3, 11, nil, "+237 678 55 44 33", "CHU de Yaoundé"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				search_events,
				appointments,
				doctors
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	doctorRepo := database.NewDoctorAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)

	for _, sd := range seedDoctors {
		doctor := &entities.Doctor{
			ID:              sd.id,
			FirstName:       sd.first,
			LastName:        sd.last,
			Name:            fmt.Sprintf("Dr. %s %s", sd.first, sd.last),
			Specialty:       sd.specialty,
			Specialties:     utils.SplitSpecialties(sd.specialty),
			City:            sd.city,
			Location:        fmt.Sprintf("%s, %s", sd.city, sd.region),
			ConsultationFee: sd.fee,
			Rating:          sd.rating,
			Experience:      sd.years,
			Available:       true,
			AvailableSlots:  sd.slots,
			Email:           utils.SynthesizeEmail(sd.first, sd.last),
			Phone:           sd.phone,
			Education:       sd.education,
		}
		if doctor.AvailableSlots == nil {
			doctor.AvailableSlots = []string{}
		}
		if err := doctorRepo.Create(ctx, doctor); err != nil {
			log.Printf("Skipping doctor %d: %v", sd.id, err)
			continue
		}
		log.Printf("Seeded doctor %d: %s", sd.id, doctor.Name)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	appointment := &entities.Appointment{
		DoctorID:     1,
		Slot:         "09:00",
		ScheduledAt:  time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local),
		Status:       entities.AppointmentStatusConfirmed,
		PatientName:  "Alice Fouda",
		PatientPhone: "+237 699 11 22 33",
		Reason:       "Consultation de suivi",
	}
	if err := appointmentRepo.Create(ctx, appointment); err != nil {
		log.Printf("Skipping demo appointment: %v", err)
	} else {
		log.Printf("Seeded appointment %s for doctor 1", appointment.ID)
	}

	log.Println("Seeding complete")
}
