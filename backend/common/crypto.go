package common

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func Password2Hash(password string) (string, error) {
	passwordBytes := []byte(password)
	hashedPassword, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func ValidatePasswordAndHash(password string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GetUUID returns a random id without dashes, used for API tokens and blob
// object names.
func GetUUID() string {
	code := uuid.New().String()
	code = code[:8] + code[9:13] + code[14:18] + code[19:23] + code[24:]
	return code
}
