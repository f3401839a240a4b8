package auth

import (
	"github.com/gofiber/fiber/v2"

	"lesprivat_backend/internals/constants"
	helper "lesprivat_backend/internals/helpers"
)

// AuthRequired memastikan request membawa access token yang valid.
// Verifikasi identitas penuh tetap di service auth eksternal; di sini cukup
// cek token + simpan raw token ke Locals untuk dipakai controller.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
		}
		if _, err := helper.GetUserIDFromToken(c); err != nil {
			return err
		}
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}

// AdminOnly membatasi akses hanya untuk role admin.
func AdminOnly(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helper.GetRoleFromToken(c)
		if err != nil {
			return err
		}
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}

// TutorOnly membatasi akses untuk role tutor atau admin.
func TutorOnly(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helper.GetRoleFromToken(c)
		if err != nil {
			return err
		}
		if role != constants.RoleTutor && role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorTutor(feature))
		}
		return c.Next()
	}
}
