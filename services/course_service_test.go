package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teacherWallet = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	otherWallet   = "0x00000000000000000000000000000000000000ff"
)

func newCourseFixture(t *testing.T) (*CourseService, *CourseStore, *fakeLedger) {
	db := newTestDB(t)
	store := NewCourseStore(db)
	chain := newFakeLedger()
	return NewCourseService(store, chain), store, chain
}

func createCourse(t *testing.T, svc *CourseService, price float64, status models.CourseStatus) *models.Course {
	t.Helper()
	course, err := svc.Create(context.Background(), CreateCourseInput{
		Title:                "Solidity from Scratch",
		Description:          "Contracts, storage and gas",
		TeacherWalletAddress: teacherWallet,
		PriceYD:              price,
		Category:             "web3",
		Status:               status,
	})
	require.NoError(t, err)
	return course
}

func TestCreateFreeCourseNeverTouchesChain(t *testing.T) {
	svc, store, chain := newCourseFixture(t)

	course := createCourse(t, svc, 0, models.CourseStatusPublished)

	assert.Equal(t, models.CourseStatusPublished, course.Status)
	assert.Empty(t, chain.writes)

	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestCreatePaidDraftRegistersOnChain(t *testing.T) {
	svc, _, chain := newCourseFixture(t)

	course := createCourse(t, svc, 100, models.CourseStatusDraft)

	assert.Equal(t, models.CourseStatusDraft, course.Status)
	record := chain.records[course.ID.String()]
	require.NotNil(t, record)
	assert.Equal(t, teacherWallet, record.teacher)
	assert.InDelta(t, 100, record.priceYD, 1e-9)
	assert.Equal(t, models.CourseStatusDraft, record.status)
}

func TestCreatePaidPublishedMirrorsBothSides(t *testing.T) {
	svc, store, chain := newCourseFixture(t)

	course := createCourse(t, svc, 100, models.CourseStatusPublished)

	assert.Equal(t, models.CourseStatusPublished, course.Status)
	record := chain.records[course.ID.String()]
	require.NotNil(t, record)
	assert.Equal(t, models.CourseStatusPublished, record.status)

	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestCreateChainFailureRollsBackRow(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	chain.createErr = errors.New("rpc unreachable")

	_, err := svc.Create(context.Background(), CreateCourseInput{
		Title:                "Ghost Course",
		TeacherWalletAddress: teacherWallet,
		PriceYD:              50,
		Status:               models.CourseStatusPublished,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "rolled back")

	// the compensating delete removed the row
	courses, listErr := store.List(CourseFilter{})
	require.NoError(t, listErr)
	assert.Empty(t, courses)
	assert.Empty(t, chain.records)
}

func TestCreatePublishFailureKeepsDraftWithoutError(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	chain.statusErr = &ledger.RevertError{Hash: "0xdead", Reason: "not authorized"}

	course := createCourse(t, svc, 100, models.CourseStatusPublished)

	// creation is guaranteed, publishing is best-effort
	assert.Equal(t, models.CourseStatusDraft, course.Status)

	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusDraft, stored.Status)

	record := chain.records[course.ID.String()]
	require.NotNil(t, record)
	assert.NotEqual(t, models.CourseStatusPublished, record.status)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc, _, chain := newCourseFixture(t)

	_, err := svc.Create(context.Background(), CreateCourseInput{
		Title:                "Broken",
		TeacherWalletAddress: teacherWallet,
		PriceYD:              -1,
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, chain.writes)
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 100, models.CourseStatusDraft)
	chain.writes = nil

	newTitle := "Hijacked"
	_, err := svc.Update(context.Background(), course.ID, otherWallet, UpdateCourseInput{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Solidity from Scratch", stored.Title)
	assert.Empty(t, chain.writes)
}

func TestUpdateSameStatusSkipsChain(t *testing.T) {
	svc, _, chain := newCourseFixture(t)
	course := createCourse(t, svc, 100, models.CourseStatusPublished)
	writesBefore := len(chain.writes)

	status := models.CourseStatusPublished
	updated, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.CourseStatusPublished, updated.Status)
	assert.Len(t, chain.writes, writesBefore)
}

func TestUpdateFreeCourseStatusIsLocalOnly(t *testing.T) {
	svc, _, chain := newCourseFixture(t)
	course := createCourse(t, svc, 0, models.CourseStatusDraft)

	status := models.CourseStatusPublished
	updated, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.CourseStatusPublished, updated.Status)
	assert.Empty(t, chain.writes)
}

func TestUpdateChainFailureRollsStatusBack(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 100, models.CourseStatusPublished)
	chain.statusErr = &ledger.RevertError{Hash: "0xdead", Reason: "paused"}

	status := models.CourseStatusDraft
	_, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &status})
	require.Error(t, err)
	assert.ErrorContains(t, err, "published -> draft")

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestUpdateFallsBackToCreateWhenUnmirrored(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	// a free course that got a price later: never mirrored
	course := createCourse(t, svc, 0, models.CourseStatusDraft)

	price := 50.0
	status := models.CourseStatusPublished
	updated, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{
		PriceYD: &price,
		Status:  &status,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CourseStatusPublished, updated.Status)
	record := chain.records[course.ID.String()]
	require.NotNil(t, record)
	assert.Equal(t, models.CourseStatusPublished, record.status)
	assert.InDelta(t, 50, record.priceYD, 1e-9)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestUpdateFallbackCreateFailureRollsStatusBack(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 0, models.CourseStatusDraft)
	chain.createErr = errors.New("rpc unreachable")

	price := 50.0
	status := models.CourseStatusPublished
	_, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{
		PriceYD: &price,
		Status:  &status,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "draft -> published")

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusDraft, stored.Status)
}

func TestArchiveIsBestEffortOnChain(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 100, models.CourseStatusPublished)
	chain.statusErr = &ledger.RevertError{Hash: "0xdead", Reason: "paused"}

	archived, err := svc.Archive(context.Background(), course.ID, teacherWallet)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusArchived, archived.Status)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusArchived, stored.Status)

	// the chain record keeps its old status; that never fails the call
	assert.Equal(t, models.CourseStatusPublished, chain.records[course.ID.String()].status)
}

func TestArchiveFreeCourseNeverTouchesChain(t *testing.T) {
	svc, _, chain := newCourseFixture(t)
	course := createCourse(t, svc, 0, models.CourseStatusPublished)

	archived, err := svc.Archive(context.Background(), course.ID, teacherWallet)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusArchived, archived.Status)
	assert.Empty(t, chain.writes)
}

func TestArchiveByNonOwnerIsForbidden(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 100, models.CourseStatusPublished)
	writesBefore := len(chain.writes)

	_, err := svc.Archive(context.Background(), course.ID, otherWallet)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
	assert.Len(t, chain.writes, writesBefore)
}

func TestArchiveThenRepublishViaFallback(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 0, models.CourseStatusDraft)

	// setting the price alone does not mirror
	price := 50.0
	_, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{PriceYD: &price})
	require.NoError(t, err)
	assert.Empty(t, chain.records)

	// archiving the now-paid course registers it on the fly
	archived := models.CourseStatusArchived
	_, err = svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &archived})
	require.NoError(t, err)
	require.NotNil(t, chain.records[course.ID.String()])

	// record exists now, so republishing goes through the status path
	published := models.CourseStatusPublished
	updated, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPublished, updated.Status)
	assert.Equal(t, models.CourseStatusPublished, chain.records[course.ID.String()].status)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestUpdateStatusFromRejectsConcurrentChange(t *testing.T) {
	svc, store, _ := newCourseFixture(t)
	course := createCourse(t, svc, 0, models.CourseStatusDraft)

	// expected-current status no longer matches
	err := store.UpdateStatusFrom(course.ID, models.CourseStatusPublished, models.CourseStatusArchived)
	assert.ErrorIs(t, err, ErrStatusConflict)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusDraft, stored.Status)

	require.NoError(t, store.UpdateStatusFrom(course.ID, models.CourseStatusDraft, models.CourseStatusPublished))
	stored, getErr = store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestRollbackYieldsToConcurrentWriter(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	course := createCourse(t, svc, 100, models.CourseStatusPublished)

	// another writer archives the row while the chain call is in flight; the
	// failed transition's rollback must not clobber that write
	chain.statusErr = &ledger.RevertError{Hash: "0xdead", Reason: "paused"}
	chain.statusHook = func() {
		_, err := store.Update(course.ID, map[string]interface{}{"status": models.CourseStatusArchived})
		require.NoError(t, err)
	}

	status := models.CourseStatusDraft
	_, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &status})
	require.Error(t, err)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusArchived, stored.Status)
}

func TestRepublishArchivedUnmirroredCourse(t *testing.T) {
	svc, store, chain := newCourseFixture(t)
	// free course archived locally, then priced: archived + paid + unmirrored
	course := createCourse(t, svc, 0, models.CourseStatusDraft)
	_, err := svc.Archive(context.Background(), course.ID, teacherWallet)
	require.NoError(t, err)
	price := 50.0
	_, err = svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{PriceYD: &price})
	require.NoError(t, err)
	require.Empty(t, chain.records)

	// one call registers and publishes via the fallback path
	published := models.CourseStatusPublished
	updated, err := svc.Update(context.Background(), course.ID, teacherWallet, UpdateCourseInput{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPublished, updated.Status)

	record := chain.records[course.ID.String()]
	require.NotNil(t, record)
	assert.Equal(t, models.CourseStatusPublished, record.status)
	assert.InDelta(t, 50, record.priceYD, 1e-9)

	stored, getErr := store.GetByID(course.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.CourseStatusPublished, stored.Status)
}

func TestFindAllFilters(t *testing.T) {
	svc, _, _ := newCourseFixture(t)
	createCourse(t, svc, 0, models.CourseStatusPublished)
	createCourse(t, svc, 100, models.CourseStatusDraft)

	all, err := svc.FindAll(CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	published, err := svc.FindAll(CourseFilter{Status: models.CourseStatusPublished})
	require.NoError(t, err)
	assert.Len(t, published, 1)

	byTeacher, err := svc.FindAll(CourseFilter{TeacherWalletAddress: teacherWallet})
	require.NoError(t, err)
	assert.Len(t, byTeacher, 2)

	none, err := svc.FindAll(CourseFilter{TeacherWalletAddress: otherWallet})
	require.NoError(t, err)
	assert.Empty(t, none)
}
