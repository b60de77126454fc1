package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const defaultPassword = "clinic123"

var specialities = []string{
	"Cardiology",
	"Dermatology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

func main() {
	doctors := flag.Int("doctors", 10, "number of doctors")
	clients := flag.Int("clients", 50, "number of clients")
	days := flag.Int("days", 5, "days of availability per doctor")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password", zap.Error(err))
	}

	s := &seeder{
		faker: gofakeit.New(0),
		hash:  string(hash),
		now:   timezone.SystemClock{}.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		specs, err := s.specialities(tx)
		if err != nil {
			return fmt.Errorf("specialities: %w", err)
		}
		if err := s.admin(tx); err != nil {
			return fmt.Errorf("admin: %w", err)
		}
		if err := s.doctors(tx, specs, *doctors, *days); err != nil {
			return fmt.Errorf("doctors: %w", err)
		}
		if err := s.clients(tx, *clients); err != nil {
			return fmt.Errorf("clients: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	log.Info("seed complete",
		zap.Int("doctors", *doctors),
		zap.Int("clients", *clients),
		zap.String("password", defaultPassword),
	)
}

type seeder struct {
	faker *gofakeit.Faker
	hash  string
	now   time.Time
}

func (s *seeder) specialities(tx *gorm.DB) ([]models.Speciality, error) {
	out := make([]models.Speciality, 0, len(specialities))
	for _, name := range specialities {
		sp := models.Speciality{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&sp).Error; err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}

func (s *seeder) user(name, email, role string) models.User {
	return models.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: s.hash,
		Phone:        s.faker.Phone(),
		Role:         role,
	}
}

func (s *seeder) admin(tx *gorm.DB) error {
	admin := s.user("Administrator", "admin@clinic.local", models.RoleAdmin)
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error
}

func (s *seeder) doctors(tx *gorm.DB, specs []models.Speciality, count, days int) error {
	for i := 0; i < count; i++ {
		user := s.user("Dr. "+s.faker.Name(), fmt.Sprintf("doctor%d@clinic.local", i+1), models.RoleDoctor)
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		doc := models.Doctor{
			UserID:       user.ID,
			SpecialityID: specs[s.faker.Number(0, len(specs)-1)].ID,
			CRM:          fmt.Sprintf("%06d-SP", s.faker.Number(100000, 999999)),
		}
		if err := tx.Omit(clause.Associations).Create(&doc).Error; err != nil {
			return err
		}

		if err := s.slots(tx, doc, days); err != nil {
			return err
		}
	}
	return nil
}

// slots creates back-to-back 30 minute slots from 09:00 to 12:00 on each day.
func (s *seeder) slots(tx *gorm.DB, doc models.Doctor, days int) error {
	first := time.Date(s.now.Year(), s.now.Month(), s.now.Day()+1, 9, 0, 0, 0, time.UTC)

	var batch []models.Availability
	for d := 0; d < days; d++ {
		day := first.AddDate(0, 0, d)
		for slot := 0; slot < 6; slot++ {
			batch = append(batch, models.Availability{
				DoctorID:        doc.ID,
				SlotStart:       day.Add(time.Duration(slot*30) * time.Minute),
				DurationMinutes: 30,
			})
		}
	}
	if len(batch) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).CreateInBatches(batch, 100).Error
}

func (s *seeder) clients(tx *gorm.DB, count int) error {
	for i := 0; i < count; i++ {
		user := s.user(s.faker.Name(), fmt.Sprintf("client%d@clinic.local", i+1), models.RoleClient)
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		birth := s.faker.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		)
		client := models.Client{UserID: user.ID, BirthDate: &birth}
		if err := tx.Omit(clause.Associations).Create(&client).Error; err != nil {
			return err
		}
	}
	return nil
}
