package database

import (
	"testing"

	"billing/internal/config"
	"billing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	for _, m := range Models {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&model.Customer{}, "Email"))
}

func TestPlanDescriptionNotNull(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	err = db.Exec("INSERT INTO plan (name, price, description) VALUES (?, ?, NULL)", "basic", 10).Error
	assert.Error(t, err)

	plan := &model.Plan{Name: "basic", Price: 10}
	require.NoError(t, db.Create(plan).Error)

	var got model.Plan
	require.NoError(t, db.First(&got, plan.ID).Error)
	assert.Equal(t, "", got.Description)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := dialector(&config.DatabaseConfig{Driver: driver, Host: "h", Port: 1, SQLitePath: "x.db"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, logLevel("silent"))
	assert.Equal(t, gormlogger.Info, logLevel("INFO"))
	assert.Equal(t, gormlogger.Warn, logLevel(""))
}
