package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPurchaseEnrollsOnce(t *testing.T) {
	db := newTestDB(t)
	store := NewCourseStore(db)
	txns := NewTransactionService(db, store)
	course := seedCourse(t, store)

	hash := "0xabc"
	_, err := txns.RecordPurchase(course.ID, studentWallet, &hash)
	require.NoError(t, err)

	_, err = txns.RecordPurchase(course.ID, studentWallet, &hash)
	assert.ErrorIs(t, err, ErrAlreadyPurchased)

	history, err := txns.FindAll(studentWallet)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "purchase", history[0].TransactionType)
	assert.Equal(t, "success", history[0].Status)
	assert.InDelta(t, 100, history[0].AmountYD, 1e-9)

	stored, err := store.GetByID(course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.TotalStudents)
}

func TestCreateTransactionRejectsNegativeAmount(t *testing.T) {
	db := newTestDB(t)
	txns := NewTransactionService(db, NewCourseStore(db))

	_, err := txns.Create(CreateTransactionInput{
		FromWalletAddress: studentWallet,
		ToWalletAddress:   teacherWallet,
		AmountYD:          -5,
		TransactionType:   "purchase",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateTransactionStatus(t *testing.T) {
	db := newTestDB(t)
	txns := NewTransactionService(db, NewCourseStore(db))

	created, err := txns.Create(CreateTransactionInput{
		FromWalletAddress: studentWallet,
		ToWalletAddress:   teacherWallet,
		AmountYD:          10,
		TransactionType:   "reward",
	})
	require.NoError(t, err)

	updated, err := txns.UpdateStatus(created.ID, "success")
	require.NoError(t, err)
	assert.Equal(t, "success", updated.Status)
}
