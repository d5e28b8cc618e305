package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rebeauty-backend/models"
)

// openTestDB gives each test its own named in-memory database so state never
// bleeds between tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Staff{},
		&models.Visit{},
		&models.VisitItem{},
	))
	return db
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, email *string, optIn bool, birthday *time.Time) models.Customer {
	t.Helper()
	customer := models.Customer{
		Name:       name,
		Email:      email,
		EmailOptIn: optIn,
		Birthday:   birthday,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedVisit(t *testing.T, db *gorm.DB, customerID uint, visitDate time.Time, categories ...string) models.Visit {
	t.Helper()
	visit := models.Visit{CustomerID: customerID, VisitDate: visitDate}
	require.NoError(t, db.Create(&visit).Error)
	for _, category := range categories {
		item := models.VisitItem{
			VisitID:       visit.ID,
			Category:      category,
			FollowDueDate: models.FollowDueDate(visitDate, category),
		}
		require.NoError(t, db.Create(&item).Error)
	}
	return visit
}
