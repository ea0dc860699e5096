package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would open a second empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseLesson{},
		&models.UserCourse{},
		&models.Review{},
		&models.Transaction{},
		&models.Certificate{},
		&models.LearningRecord{},
	))
	return db
}

type fakeRecord struct {
	teacher string
	priceYD float64
	status  models.CourseStatus
}

// fakeLedger implements CourseLedger with the gateway's guard semantics.
type fakeLedger struct {
	records   map[string]*fakeRecord
	createErr error
	statusErr error
	// runs at the start of UpdateCourseStatus, standing in for work another
	// writer does while the chain call is in flight
	statusHook func()
	writes     []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: map[string]*fakeRecord{}}
}

func (f *fakeLedger) CourseExists(ctx context.Context, courseID string) (bool, error) {
	_, ok := f.records[courseID]
	return ok, nil
}

func (f *fakeLedger) CreateCourse(ctx context.Context, courseID, teacher string, priceYD float64) (*ledger.TxResult, error) {
	f.writes = append(f.writes, "create:"+courseID)
	if priceYD <= 0 {
		return nil, ledger.ErrInvalidPrice
	}
	if _, ok := f.records[courseID]; ok {
		return nil, ledger.ErrAlreadyExists
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.records[courseID] = &fakeRecord{teacher: teacher, priceYD: priceYD, status: models.CourseStatusDraft}
	return &ledger.TxResult{Hash: fmt.Sprintf("0xcreate-%s", courseID), BlockNumber: 1}, nil
}

func (f *fakeLedger) UpdateCourseStatus(ctx context.Context, courseID string, status models.CourseStatus) (*ledger.TxResult, error) {
	f.writes = append(f.writes, fmt.Sprintf("status:%s:%s", courseID, status))
	if f.statusHook != nil {
		f.statusHook()
	}
	record, ok := f.records[courseID]
	if !ok {
		return nil, ledger.ErrCourseNotFound
	}
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	record.status = status
	return &ledger.TxResult{Hash: fmt.Sprintf("0xstatus-%s", courseID), BlockNumber: 2}, nil
}

func (f *fakeLedger) CreateCourseWithStatus(ctx context.Context, courseID, teacher string, priceYD float64, publish bool) (*ledger.TxResult, error) {
	created, err := f.CreateCourse(ctx, courseID, teacher, priceYD)
	if err != nil {
		return nil, err
	}
	if !publish {
		return created, nil
	}
	if _, err := f.UpdateCourseStatus(ctx, courseID, models.CourseStatusPublished); err != nil {
		return created, &ledger.PublishFailedError{Create: created, Err: err}
	}
	return created, nil
}
