package handler

import (
	"errors"

	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Error categories used in response bodies. Every error response is
// {"error": <category>, "message": <human text>}.
const (
	catValidation     = "ValidationFailed"
	catAuthentication = "AuthenticationFailed"
	catUnauthorized   = "Unauthorized"
	catForbidden      = "Forbidden"
	catNotFound       = "NotFound"
	catConflict       = "Conflict"
	catAccountLocked  = "AccountLocked"
	catInternal       = "InternalError"
)

func fail(c *fiber.Ctx, status int, category, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   category,
		"message": message,
	})
}

// failFromErr translates service errors into the HTTP taxonomy. Anything not
// recognized is logged and reported as a 500 without leaking internals.
func failFromErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrWarehouseRefs),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrSelfDeactivate),
		errors.Is(err, service.ErrShipmentNotPending),
		errors.Is(err, service.ErrShipmentTerminal):
		return fail(c, fiber.StatusBadRequest, catValidation, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, catAuthentication, err.Error())

	case errors.Is(err, service.ErrAccountLocked):
		return fail(c, fiber.StatusLocked, catAccountLocked, err.Error())

	case errors.Is(err, service.ErrForbiddenShipment):
		return fail(c, fiber.StatusForbidden, catForbidden, err.Error())

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrAdminNotFound),
		errors.Is(err, service.ErrShipmentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, fiber.StatusNotFound, catNotFound, err.Error())

	// Conflict is reserved for duplicate unique fields; shipment state
	// violations are client errors.
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrEmailExists):
		return fail(c, fiber.StatusConflict, catConflict, err.Error())
	}

	log.WithError(err).Error("Unhandled service error")
	return fail(c, fiber.StatusInternalServerError, catInternal, "internal server error")
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
