package services

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/web3_university/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// EnsureUser returns the user for the wallet, creating a default student
// account on first login.
func (s *UserService) EnsureUser(walletAddress string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "wallet_address = ?", walletAddress).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch user %s: %w", walletAddress, err)
	}

	user = models.User{
		WalletAddress: walletAddress,
		Username:      shortWallet(walletAddress),
		Role:          "student",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", walletAddress, err)
	}
	return &user, nil
}

func (s *UserService) FindByWallet(walletAddress string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "wallet_address = ?", walletAddress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, walletAddress)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", walletAddress, err)
	}
	return &user, nil
}

func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

type UpdateProfileInput struct {
	Username  *string
	Email     *string
	AvatarURL *string
}

func (s *UserService) UpdateProfile(walletAddress string, input UpdateProfileInput) (*models.User, error) {
	changes := map[string]interface{}{}
	if input.Username != nil {
		changes["username"] = *input.Username
	}
	if input.Email != nil {
		changes["email"] = *input.Email
	}
	if input.AvatarURL != nil {
		changes["avatar_url"] = *input.AvatarURL
	}
	if len(changes) == 0 {
		return s.FindByWallet(walletAddress)
	}

	res := s.db.Model(&models.User{}).Where("wallet_address = ?", walletAddress).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", walletAddress, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, walletAddress)
	}
	return s.FindByWallet(walletAddress)
}

func shortWallet(walletAddress string) string {
	if len(walletAddress) <= 10 {
		return walletAddress
	}
	return walletAddress[:6] + "..." + walletAddress[len(walletAddress)-4:]
}
