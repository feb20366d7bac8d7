// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"helios/config"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/service"
)

const (
	defaultMinLength = 8
	// bcrypt silently truncates beyond 72 bytes; refuse longer inputs instead.
	maxPasswordLength = 72
)

var defaultForbiddenWords = []string{"password", "admin"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface
// using bcrypt. Strength policy comes from configuration with safe defaults.
type bcryptHasher struct {
	cost           int
	minLength      int
	requireUpper   bool
	requireLower   bool
	requireNumber  bool
	requireSpecial bool
	forbiddenWords []string
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	h := &bcryptHasher{
		cost:           bcrypt.DefaultCost,
		minLength:      defaultMinLength,
		requireUpper:   true,
		requireLower:   true,
		requireNumber:  true,
		requireSpecial: true,
		forbiddenWords: defaultForbiddenWords,
	}

	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost {
		h.cost = cfg.Auth.BcryptCost
	}
	if cfg != nil && cfg.PasswordStrength != nil {
		ps := cfg.PasswordStrength
		if ps.MinLength > 0 {
			h.minLength = ps.MinLength
		}
		h.requireUpper = ps.RequireUppercase
		h.requireLower = ps.RequireLowercase
		h.requireNumber = ps.RequireNumbers
		h.requireSpecial = ps.RequireSpecial
		if len(ps.ForbiddenWords) > 0 {
			h.forbiddenWords = ps.ForbiddenWords
		}
	}

	return h
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost, used by tests
// that want cheaper hashing.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost:           cost,
		minLength:      defaultMinLength,
		requireUpper:   true,
		requireLower:   true,
		requireNumber:  true,
		requireSpecial: true,
		forbiddenWords: defaultForbiddenWords,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt handles salt generation itself.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidatePasswordStrength enforces the configured policy. It runs before any
// backend write so weak passwords never leave the process.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at least " + strconv.Itoa(h.minLength) + " characters long")
	}
	if len(password) > maxPasswordLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password exceeds the maximum length")
	}
	if h.requireUpper && !hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one uppercase letter")
	}
	if h.requireLower && !hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one lowercase letter")
	}
	if h.requireNumber && !hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one number")
	}
	if h.requireSpecial && !hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one special character")
	}
	if containsForbiddenWords(password, h.forbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("password contains forbidden words")
	}

	return nil
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}

	return false
}

func hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}

	return false
}

func hasNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func hasSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}

	return false
}
