package services

import (
	"testing"

	"github.com/anjiri1684/web3_university/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const studentWallet = "0x1111111111111111111111111111111111111111"

func newReviewFixture(t *testing.T) (*ReviewService, *CourseStore, *gorm.DB) {
	db := newTestDB(t)
	store := NewCourseStore(db)
	return NewReviewService(db, store), store, db
}

func seedCourse(t *testing.T, store *CourseStore) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:                "Intro to Tokenomics",
		TeacherWalletAddress: teacherWallet,
		PriceYD:              100,
		Status:               models.CourseStatusPublished,
	}
	require.NoError(t, store.Insert(course))
	return course
}

func seedPurchase(t *testing.T, db *gorm.DB, course *models.Course, wallet string) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserCourse{
		CourseID:          course.ID,
		UserWalletAddress: wallet,
	}).Error)
}

func TestReviewRequiresPurchase(t *testing.T) {
	svc, store, _ := newReviewFixture(t)
	course := seedCourse(t, store)

	_, err := svc.Create(CreateReviewInput{
		CourseID:             course.ID,
		StudentWalletAddress: studentWallet,
		Rating:               5,
	})
	assert.ErrorIs(t, err, ErrPurchaseRequired)
}

func TestReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, store, db := newReviewFixture(t)
	course := seedCourse(t, store)
	seedPurchase(t, db, course, studentWallet)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(CreateReviewInput{
			CourseID:             course.ID,
			StudentWalletAddress: studentWallet,
			Rating:               rating,
		})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestReviewDuplicateIsRejected(t *testing.T) {
	svc, store, db := newReviewFixture(t)
	course := seedCourse(t, store)
	seedPurchase(t, db, course, studentWallet)

	_, err := svc.Create(CreateReviewInput{
		CourseID:             course.ID,
		StudentWalletAddress: studentWallet,
		Rating:               4,
	})
	require.NoError(t, err)

	_, err = svc.Create(CreateReviewInput{
		CourseID:             course.ID,
		StudentWalletAddress: studentWallet,
		Rating:               5,
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewUpdatesCourseRating(t *testing.T) {
	svc, store, db := newReviewFixture(t)
	course := seedCourse(t, store)

	wallets := []string{
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
		"0x3333333333333333333333333333333333333333",
	}
	ratings := []int{5, 4, 2}
	for i, wallet := range wallets {
		seedPurchase(t, db, course, wallet)
		_, err := svc.Create(CreateReviewInput{
			CourseID:             course.ID,
			StudentWalletAddress: wallet,
			Rating:               ratings[i],
		})
		require.NoError(t, err)
	}

	// (5+4+2)/3 = 3.6666... rounds to 3.67
	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.67, stored.Rating, 1e-9)

	count, err := svc.CountByCourse(course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestReviewUpdateRecomputesRating(t *testing.T) {
	svc, store, db := newReviewFixture(t)
	course := seedCourse(t, store)
	seedPurchase(t, db, course, studentWallet)

	review, err := svc.Create(CreateReviewInput{
		CourseID:             course.ID,
		StudentWalletAddress: studentWallet,
		Rating:               5,
	})
	require.NoError(t, err)

	newRating := 2
	_, err = svc.Update(review.ID, studentWallet, UpdateReviewInput{Rating: &newRating})
	require.NoError(t, err)

	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2, stored.Rating, 1e-9)
}

func TestReviewUpdateByNonAuthorIsForbidden(t *testing.T) {
	svc, store, db := newReviewFixture(t)
	course := seedCourse(t, store)
	seedPurchase(t, db, course, studentWallet)

	review, err := svc.Create(CreateReviewInput{
		CourseID:             course.ID,
		StudentWalletAddress: studentWallet,
		Rating:               5,
	})
	require.NoError(t, err)

	newRating := 1
	_, err = svc.Update(review.ID, otherWallet, UpdateReviewInput{Rating: &newRating})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecomputeWithNoReviewsResetsToZero(t *testing.T) {
	svc, store, _ := newReviewFixture(t)
	course := seedCourse(t, store)

	_, err := store.Update(course.ID, map[string]interface{}{"rating": 4.5})
	require.NoError(t, err)

	require.NoError(t, svc.RecomputeCourseRating(course.ID))

	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Rating)
}

func TestReviewFindAllByTeacher(t *testing.T) {
	svc, store, db := newReviewFixture(t)
	course := seedCourse(t, store)
	seedPurchase(t, db, course, studentWallet)

	other := &models.Course{
		Title:                "Unrelated",
		TeacherWalletAddress: otherWallet,
		Status:               models.CourseStatusPublished,
	}
	require.NoError(t, store.Insert(other))
	seedPurchase(t, db, other, studentWallet)

	_, err := svc.Create(CreateReviewInput{CourseID: course.ID, StudentWalletAddress: studentWallet, Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(CreateReviewInput{CourseID: other.ID, StudentWalletAddress: studentWallet, Rating: 3})
	require.NoError(t, err)

	mine, err := svc.FindAll(ReviewFilter{TeacherWalletAddress: teacherWallet})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, course.ID, mine[0].CourseID)
}
