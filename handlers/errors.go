package handlers

import (
	"errors"

	"github.com/anjiri1684/web3_university/ledger"
	"github.com/anjiri1684/web3_university/services"
	"github.com/gofiber/fiber/v2"
)

// statusForError maps a service error onto the HTTP status it should travel
// as. Anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrCourseNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrAlreadyPurchased),
		errors.Is(err, services.ErrStatusConflict),
		errors.Is(err, ledger.ErrAlreadyExists),
		errors.Is(err, ledger.ErrCertificateExists),
		errors.Is(err, ledger.ErrBadgeExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrPurchaseRequired),
		errors.Is(err, ledger.ErrNotPurchased):
		return fiber.StatusForbidden
	case errors.Is(err, ledger.ErrConfirmTimeout):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
