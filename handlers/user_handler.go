package handlers

import (
	"github.com/anjiri1684/web3_university/middleware"
	"github.com/anjiri1684/web3_university/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=2"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.users.FindByWallet(middleware.WalletAddress(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.users.UpdateProfile(middleware.WalletAddress(c), services.UpdateProfileInput{
		Username:  req.Username,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	wallet := c.Params("walletAddress")
	if !common.IsHexAddress(wallet) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet address"})
	}
	user, err := h.users.FindByWallet(wallet)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(user)
}
