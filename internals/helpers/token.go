// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lesprivat_backend/internals/configs"
)

// Simpan raw JWT di Locals dari middleware
const LocRawToken = "raw_token"

// GetRawAccessToken mengembalikan access token dari:
// 1) cookie "access_token"
// 2) Locals("raw_token") yang diset middleware
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetRawAccessToken menyimpan raw token ke Locals dari middleware auth.
func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

func parseClaims(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Metode signing token tidak valid")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid atau kadaluarsa")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Klaim token tidak valid")
	}
	return claims, nil
}

// GetUserIDFromToken mengambil user_id (UUID) dari access token.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := GetRawAccessToken(c)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	claims, err := parseClaims(raw)
	if err != nil {
		return uuid.Nil, err
	}
	idStr, _ := claims["user_id"].(string)
	id, perr := uuid.Parse(idStr)
	if perr != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
	}
	return id, nil
}

// GetTutorIDFromToken mengambil tutor_id dari access token (untuk route tutor).
func GetTutorIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := GetRawAccessToken(c)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	claims, err := parseClaims(raw)
	if err != nil {
		return uuid.Nil, err
	}
	idStr, _ := claims["tutor_id"].(string)
	id, perr := uuid.Parse(idStr)
	if perr != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "tutor_id pada token tidak valid")
	}
	return id, nil
}

// GetRoleFromToken mengambil role string dari access token.
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	raw := GetRawAccessToken(c)
	if raw == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	claims, err := parseClaims(raw)
	if err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	return role, nil
}
