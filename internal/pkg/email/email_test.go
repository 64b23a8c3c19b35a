package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDevFallbackWithoutCredentials(t *testing.T) {
	svc := NewEmailService(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		FromName:  "EduHub",
		FromEmail: "noreply@eduhub.app",
	}, zerolog.Nop())

	// Without credentials nothing is sent and no error surfaces.
	assert.NoError(t, svc.SendWelcomeEmail("jane@eduhub.app", "Jane"))
	assert.NoError(t, svc.SendCourseCreatedEmail([]string{"a@eduhub.app", "b@eduhub.app"}, "Algorithms", "Jane Doe"))
}

func TestDevFallbackDetection(t *testing.T) {
	withCreds := &EmailServiceImpl{
		config: SMTPConfig{Username: "user", Password: "pass"},
		logger: zerolog.Nop(),
	}
	assert.False(t, withCreds.devFallback("subject", []string{"x@eduhub.app"}))

	withoutCreds := &EmailServiceImpl{logger: zerolog.Nop()}
	assert.True(t, withoutCreds.devFallback("subject", []string{"x@eduhub.app"}))
}
