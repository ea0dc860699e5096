package handlers

import (
	"github.com/anjiri1684/web3_university/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type AuthHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthHandler(auth *services.AuthService, users *services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type WalletLoginRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required,eth_addr"`
	Message       string `json:"message" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
}

// Login verifies a wallet signature and issues a JWT. First-time wallets get
// a user row created on the spot.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req WalletLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := h.auth.Login(services.LoginInput{
		WalletAddress: req.WalletAddress,
		Message:       req.Message,
		Signature:     req.Signature,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	user, err := h.users.FindByWallet(req.WalletAddress)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"token": token, "user": user})
}
