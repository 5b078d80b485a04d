package session

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// signToken signs a token embedding userID in the "sub" claim and the
// session ID in "jti".
func signToken(userID int, sid, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": sid,
		"exp": time.Now().Add(TTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// parseToken verifies the token and returns the user ID and session ID.
func parseToken(tokenString, secret string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", errors.New("invalid sub claim")
	}
	sid, ok := claims["jti"].(string)
	if !ok || sid == "" {
		return 0, "", errors.New("invalid jti claim")
	}
	return int(sub), sid, nil
}
