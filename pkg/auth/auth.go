package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type Profile struct {
	Username string `json:"username"`
	IsStaff  bool   `json:"isStaff"`
}

type Claims struct {
	jwt.RegisteredClaims
	Profile Profile `json:"profile"`
}

// NewToken signs a JWT for the given profile.
func NewToken(secret []byte, profile Profile, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Profile: profile,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type ctxKey int

const (
	usernameKey ctxKey = iota
	isStaffKey
)

func SetAuthContext(ctx context.Context, username string, isStaff bool) context.Context {
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, isStaffKey, isStaff)
}

func Username(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}

func IsStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(isStaffKey).(bool)
	return staff
}
