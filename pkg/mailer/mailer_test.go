package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/superstudio/showcase-api/pkg/config"
)

func TestMailerEnabled(t *testing.T) {
	assert.False(t, New(config.SMTPConfig{}, nil).Enabled())
	assert.False(t, New(config.SMTPConfig{Host: "smtp.example.com", Disabled: true}, nil).Enabled())
	assert.True(t, New(config.SMTPConfig{Host: "smtp.example.com"}, nil).Enabled())
}

func TestMailerDisabledDoesNotBlock(t *testing.T) {
	m := New(config.SMTPConfig{Disabled: true}, nil)

	done := make(chan struct{})
	go func() {
		m.SendLoginLink(context.Background(), "student@example.com", "http://localhost:3000/submit?token=abc")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled mailer should return immediately")
	}
}
