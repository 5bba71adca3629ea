package middleware

import (
	"fmt"
	"strings"
	"time"
	"tradegate/config"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),                     // issued at
		"exp":    time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// parseToken validates a bearer token and extracts the user id
func parseToken(authHeader string) (uint, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, false
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, false
	}

	userID, ok := claims["userId"].(float64) // JWT numeric claims decode as float64
	if !ok {
		return 0, false
	}
	return uint(userID), true
}

// JWTMiddleware rejects requests without a valid token. Used on API routes
// that make no sense for anonymous callers.
func JWTMiddleware(c *fiber.Ctx) error {
	userID, ok := parseToken(c.Get("Authorization"))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid or expired token",
		})
	}

	c.Locals("userId", userID)
	return c.Next()
}

// SessionMiddleware extracts the session without rejecting anonymous
// requests. The capability gate turns an invalid session into an
// UNAUTHENTICATED decision that preserves the requested destination, which a
// hard 401 here would destroy.
func SessionMiddleware(c *fiber.Ctx) error {
	userID, ok := parseToken(c.Get("Authorization"))
	c.Locals("session", services.Session{UserID: userID, Valid: ok})
	if ok {
		c.Locals("userId", userID)
	}
	return c.Next()
}

// SessionFromContext returns the session placed by SessionMiddleware
func SessionFromContext(c *fiber.Ctx) services.Session {
	session, ok := c.Locals("session").(services.Session)
	if !ok {
		return services.Session{}
	}
	return session
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
