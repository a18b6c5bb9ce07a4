package utils

import (
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidatePhoneNumber(phone string) error
	SanitizeAudioFilename(filename string) error
}

type utils struct {
	phonePattern *regexp.Regexp
}

func New() IUtils {
	return &utils{
		phonePattern: regexp.MustCompile(`^\+?[0-9]{7,15}$`),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidatePhoneNumber(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errors.New("phone number is empty")
	}

	if !u.phonePattern.MatchString(phone) {
		return errors.New("invalid phone number format")
	}

	return nil
}

func (u *utils) SanitizeAudioFilename(filename string) error {
	if filename == "" {
		return errors.New("filename is required")
	}

	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		return errors.New("invalid filename")
	}

	return nil
}
