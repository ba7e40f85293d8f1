package service

import (
	"errors"
	"testing"

	appconfig "github.com/SnigdhoNext27/bliss-store-suite-sub001/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// errMockWrite stands in for a database failure in write paths.
var errMockWrite = errors.New("write failed")

// newTestDB opens a gorm handle over a sqlmock connection. Default
// transactions are skipped so single-statement writes expect exactly one
// Exec; explicit Transaction blocks still produce Begin/Commit.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

// disabledEmail returns an email service with no provider configured;
// every send is a skip.
func disabledEmail() *EmailService {
	return NewEmailService(&appconfig.EmailConfig{})
}
