// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"bellezza-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// Fixture is a small salon: one category, two services, one employee who
// performs only the first service, a client with a user and a staff user.
type Fixture struct {
	Category     models.Category
	Service      models.Service
	OtherService models.Service
	Employee     models.Employee
	ClientUser   models.User
	Client       models.Client
	Staff        models.User
}

// Password is the plain password of every fixture user.
const Password = "s3cret-pass"

func Seed(t testing.TB, db *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{}
	f.Category = models.Category{Name: "Nails", Description: "Nail care"}
	require.NoError(t, db.Create(&f.Category).Error)

	f.Service = models.Service{CategoryID: &f.Category.ID, Name: "Manicure", Price: decimal.RequireFromString("1500.00")}
	require.NoError(t, db.Create(&f.Service).Error)
	f.OtherService = models.Service{CategoryID: &f.Category.ID, Name: "Pedicure", Price: decimal.RequireFromString("2000.00")}
	require.NoError(t, db.Create(&f.OtherService).Error)

	f.Employee = models.Employee{Name: "Olga", Position: "Nail master"}
	require.NoError(t, db.Omit("Services").Create(&f.Employee).Error)
	require.NoError(t, db.Model(&f.Employee).Association("Services").Replace([]models.Service{f.Service}))
	f.Employee.Services = []models.Service{f.Service}

	f.ClientUser = models.User{Username: "anna", Email: "anna@example.com", Password: Password, FirstName: "Anna"}
	require.NoError(t, db.Omit("Client").Create(&f.ClientUser).Error)
	f.Client = models.Client{UserID: &f.ClientUser.ID, Name: "Anna", Email: "anna@example.com", Phone: "+79170000001"}
	require.NoError(t, db.Create(&f.Client).Error)

	f.Staff = models.User{Username: "admin", Email: "admin@example.com", Password: Password, IsStaff: true}
	require.NoError(t, db.Omit("Client").Create(&f.Staff).Error)

	return f
}

// NewClient creates another client, with a linked user when withUser is set.
func NewClient(t testing.TB, db *gorm.DB, name string, withUser bool) (*models.Client, *models.User) {
	t.Helper()

	id := uuid.NewString()[:8]
	client := &models.Client{Name: name, Email: name + "-" + id + "@example.com", Phone: "+7917" + phoneDigits(id)}
	var user *models.User
	if withUser {
		user = &models.User{Username: name + id, Email: client.Email, Password: Password}
		require.NoError(t, db.Omit("Client").Create(user).Error)
		client.UserID = &user.ID
	}
	require.NoError(t, db.Create(client).Error)
	return client, user
}

func phoneDigits(s string) string {
	out := make([]byte, 0, 7)
	for i := 0; i < len(s) && len(out) < 7; i++ {
		out = append(out, '0'+s[i]%10)
	}
	for len(out) < 7 {
		out = append(out, '0')
	}
	return string(out)
}
