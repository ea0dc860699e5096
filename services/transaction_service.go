package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/web3_university/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionService struct {
	db      *gorm.DB
	courses *CourseStore
}

func NewTransactionService(db *gorm.DB, courses *CourseStore) *TransactionService {
	return &TransactionService{db: db, courses: courses}
}

type CreateTransactionInput struct {
	FromWalletAddress string
	ToWalletAddress   string
	AmountYD          float64
	TransactionType   string
	TransactionHash   *string
	Status            string
	Metadata          *string
}

func (s *TransactionService) Create(input CreateTransactionInput) (*models.Transaction, error) {
	if input.AmountYD < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	txn := &models.Transaction{
		FromWalletAddress: input.FromWalletAddress,
		ToWalletAddress:   input.ToWalletAddress,
		AmountYD:          input.AmountYD,
		TransactionType:   input.TransactionType,
		TransactionHash:   input.TransactionHash,
		Metadata:          input.Metadata,
	}
	if input.Status != "" {
		txn.Status = input.Status
	}
	if err := s.db.Create(txn).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

func (s *TransactionService) FindAll(walletAddress string) ([]models.Transaction, error) {
	query := s.db.Model(&models.Transaction{})
	if walletAddress != "" {
		query = query.Where("from_wallet_address = ? OR to_wallet_address = ?", walletAddress, walletAddress)
	}

	var txns []models.Transaction
	if err := query.Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *TransactionService) FindOne(id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", id, err)
	}
	return &txn, nil
}

func (s *TransactionService) UpdateStatus(id uuid.UUID, status string) (*models.Transaction, error) {
	res := s.db.Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return s.FindOne(id)
}

// RecordPurchase books a confirmed on-chain purchase: a transaction row, the
// user_courses entry the review gate checks, and the course's student count.
func (s *TransactionService) RecordPurchase(courseID uuid.UUID, studentWallet string, txHash *string) (*models.UserCourse, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.Model(&models.UserCourse{}).
		Where("course_id = ? AND user_wallet_address = ?", courseID, studentWallet).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: course %s", ErrAlreadyPurchased, courseID)
	}

	enrollment := &models.UserCourse{
		CourseID:          courseID,
		UserWalletAddress: studentWallet,
		TransactionHash:   txHash,
	}
	if err := s.db.Create(enrollment).Error; err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	if _, err := s.Create(CreateTransactionInput{
		FromWalletAddress: studentWallet,
		ToWalletAddress:   course.TeacherWalletAddress,
		AmountYD:          course.PriceYD,
		TransactionType:   "purchase",
		TransactionHash:   txHash,
		Status:            "success",
	}); err != nil {
		return nil, err
	}

	var students int64
	err = s.db.Model(&models.UserCourse{}).Where("course_id = ?", courseID).Count(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if _, err := s.courses.Update(courseID, map[string]interface{}{"total_students": students}); err != nil {
		return nil, err
	}

	return enrollment, nil
}
