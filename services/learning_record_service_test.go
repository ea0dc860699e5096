package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLearningRecordFixture(t *testing.T) (*LearningRecordService, *CourseStore) {
	db := newTestDB(t)
	store := NewCourseStore(db)
	return NewLearningRecordService(db, store), store
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRecordProgressCreatesThenUpserts(t *testing.T) {
	svc, store := newLearningRecordFixture(t)
	course := seedCourse(t, store)

	created, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          course.ID,
		UserWalletAddress: studentWallet,
		WatchTime:         intPtr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 120, created.WatchTime)
	assert.Equal(t, 0, created.ProgressPercentage)
	assert.False(t, created.Completed)

	// second report for the same (wallet, course, nil lesson) updates in place
	updated, err := svc.RecordProgress(RecordProgressInput{
		CourseID:           course.ID,
		UserWalletAddress:  studentWallet,
		ProgressPercentage: intPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 50, updated.ProgressPercentage)
	// absent fields keep their stored values
	assert.Equal(t, 120, updated.WatchTime)

	all, err := svc.FindAll(LearningRecordFilter{UserWalletAddress: studentWallet})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecordProgressKeysOnLesson(t *testing.T) {
	svc, store := newLearningRecordFixture(t)
	course := seedCourse(t, store)
	lessonID := uuid.New()

	courseWide, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          course.ID,
		UserWalletAddress: studentWallet,
		WatchTime:         intPtr(30),
	})
	require.NoError(t, err)

	perLesson, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          course.ID,
		UserWalletAddress: studentWallet,
		LessonID:          &lessonID,
		WatchTime:         intPtr(60),
	})
	require.NoError(t, err)
	assert.NotEqual(t, courseWide.ID, perLesson.ID)

	// reporting for the lesson again touches only the lesson row
	again, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          course.ID,
		UserWalletAddress: studentWallet,
		LessonID:          &lessonID,
		Completed:         boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, perLesson.ID, again.ID)
	assert.True(t, again.Completed)

	refetched, err := svc.FindOne(courseWide.ID)
	require.NoError(t, err)
	assert.False(t, refetched.Completed)
}

func TestRecordProgressValidation(t *testing.T) {
	svc, store := newLearningRecordFixture(t)
	course := seedCourse(t, store)

	_, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          course.ID,
		UserWalletAddress: studentWallet,
		WatchTime:         intPtr(-1),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordProgress(RecordProgressInput{
		CourseID:           course.ID,
		UserWalletAddress:  studentWallet,
		ProgressPercentage: intPtr(101),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordProgress(RecordProgressInput{
		CourseID:          uuid.New(),
		UserWalletAddress: studentWallet,
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestLearningRecordListOrdersByLastWatched(t *testing.T) {
	svc, store := newLearningRecordFixture(t)
	first := seedCourse(t, store)
	second := seedCourse(t, store)

	stale, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          first.ID,
		UserWalletAddress: studentWallet,
	})
	require.NoError(t, err)

	// push the first record's last_watched_at into the past
	past := time.Now().Add(-time.Hour)
	err = svc.db.Model(stale).Update("last_watched_at", past).Error
	require.NoError(t, err)

	fresh, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          second.ID,
		UserWalletAddress: studentWallet,
	})
	require.NoError(t, err)

	records, err := svc.FindAll(LearningRecordFilter{UserWalletAddress: studentWallet})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, fresh.ID, records[0].ID)

	filtered, err := svc.FindAll(LearningRecordFilter{CourseID: &first.ID, UserWalletAddress: studentWallet})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, stale.ID, filtered[0].ID)
}

func TestLearningRecordUpdateChecksOwnership(t *testing.T) {
	svc, store := newLearningRecordFixture(t)
	course := seedCourse(t, store)

	record, err := svc.RecordProgress(RecordProgressInput{
		CourseID:          course.ID,
		UserWalletAddress: studentWallet,
	})
	require.NoError(t, err)

	_, err = svc.Update(record.ID, otherWallet, UpdateLearningRecordInput{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(record.ID, studentWallet, UpdateLearningRecordInput{
		WatchTime: intPtr(300),
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 300, updated.WatchTime)
	assert.True(t, updated.Completed)
	assert.True(t, updated.LastWatchedAt.After(record.LastWatchedAt) || updated.LastWatchedAt.Equal(record.LastWatchedAt))
}

func TestLearningRecordFindOneMissing(t *testing.T) {
	svc, _ := newLearningRecordFixture(t)

	_, err := svc.FindOne(uuid.New())
	assert.ErrorIs(t, err, ErrLearningRecordNotFound)
}
