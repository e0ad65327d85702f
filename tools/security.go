package tools

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	return string(b), err
}

func CheckPasswordHash(hashed, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
