package models

import (
	"os"
	"time"

	"brokerkit/internal/config"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateAdminFromEnv creates the bootstrap admin account if
// ADMIN_EMAIL/ADMIN_PASSWORD are set and no such member exists.
func CreateAdminFromEnv(db *gorm.DB, cfg *config.Config) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" || password == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	var count int64
	if err := db.Model(&Member{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &Member{
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		Role:      MemberRoleAdmin,
		Region:    cfg.Campaign.DefaultRegion,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Success("Bootstrap admin created: %s", email)
	return nil
}

// SeedCalendarWeeks pre-creates one CalendarWeek row per Monday of the
// given year. Existing weeks are left untouched; new ones start
// unavailable until an admin publishes them.
func SeedCalendarWeeks(db *gorm.DB, year int) error {
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	// walk forward to the first Monday
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}

	created := 0
	for day.Year() == year {
		_, weekNumber := day.ISOWeek()
		week := CalendarWeek{
			WeekStartDate: day,
			WeekNumber:    weekNumber,
			Year:          year,
			IsAvailable:   false,
		}

		result := db.Where("week_start_date = ?", day).FirstOrCreate(&week)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			created++
		}

		day = day.AddDate(0, 0, 7)
	}

	log.Info("Calendar week seed for %d complete, %d new weeks", year, created)
	return nil
}
