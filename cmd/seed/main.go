package main

import (
	"fmt"
	"time"

	"clinic-booking-service/config"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/service"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the database with fake clinicians, patients and a week of open time
// slots, for local development and load testing.
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Info("Seed starting")

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.DB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	clinicians, err := seedClinicians(db, 20)
	if err != nil {
		logrus.Fatalf("Failed to seed clinicians: %v", err)
	}
	if err := seedPatients(db, 200); err != nil {
		logrus.Fatalf("Failed to seed patients: %v", err)
	}
	if err := seedTimeSlots(db, clinicians, 7); err != nil {
		logrus.Fatalf("Failed to seed time slots: %v", err)
	}

	logrus.Info("Seed complete")
}

var specializations = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

func seedClinicians(db *gorm.DB, count int) ([]entity.ClinicianProfile, error) {
	logrus.Infof("Seeding %d clinicians", count)

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profiles := make([]entity.ClinicianProfile, 0, count)
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			user := entity.User{
				RoleID:   entity.RoleIDClinician,
				Email:    gofakeit.Email(),
				Password: string(password),
				FullName: gofakeit.Name(),
				IsActive: true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			profile := entity.ClinicianProfile{
				UserID:         user.ID,
				LicenseNumber:  fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)),
				Specialization: specializations[gofakeit.Number(0, len(specializations)-1)],
				Biography:      gofakeit.Sentence(12),
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			profiles = append(profiles, profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Info("Clinicians seeded")
	return profiles, nil
}

func seedPatients(db *gorm.DB, count int) error {
	logrus.Infof("Seeding %d patients", count)

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const batchSize = 50
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for i := offset; i < end; i++ {
				user := entity.User{
					RoleID:   entity.RoleIDPatient,
					Email:    gofakeit.Email(),
					Password: string(password),
					FullName: gofakeit.Name(),
					IsActive: true,
				}
				if err := tx.Create(&user).Error; err != nil {
					return err
				}

				gender := entity.GenderMale
				if gofakeit.Bool() {
					gender = entity.GenderFemale
				}
				profile := entity.PatientProfile{
					UserID:      user.ID,
					PhoneNumber: gofakeit.Phone(),
					DateOfBirth: gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2007, 12, 31, 0, 0, 0, 0, time.UTC)),
					Gender:      gender,
					Address:     gofakeit.Address().Address,
				}
				if err := tx.Create(&profile).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		logrus.Infof("Patients seeded: %d/%d", end, count)
	}

	return nil
}

func seedTimeSlots(db *gorm.DB, clinicians []entity.ClinicianProfile, days int) error {
	logrus.Infof("Seeding %d days of time slots for %d clinicians", days, len(clinicians))

	strategy := service.NewDefaultSlotStrategy()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	return db.Transaction(func(tx *gorm.DB) error {
		for _, clinician := range clinicians {
			for day := 0; day < days; day++ {
				slots := strategy.GenerateSlots(clinician.UserID, today.AddDate(0, 0, day), 0)
				if err := tx.Create(&slots).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
