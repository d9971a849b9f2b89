package mailer

import (
	"testing"

	"netlife/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderActivation(t *testing.T) {
	body, err := RenderActivation(ActivationEmail{
		Username: "alice",
		BaseURL:  "http://localhost:8375",
		UID:      "NDI",
		Token:    "some.jwt.token",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi alice,")
	assert.Contains(t, body, `href="http://localhost:8375/activate/NDI/some.jwt.token/"`)
}

func TestRenderActivation_EscapesUsername(t *testing.T) {
	body, err := RenderActivation(ActivationEmail{
		Username: "<script>alert(1)</script>",
		BaseURL:  "http://localhost:8375",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestFromConfig_PicksLogSenderWithoutSMTP(t *testing.T) {
	sender, err := FromConfig(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, sender)
}

func TestFromConfig_PicksSMTPSender(t *testing.T) {
	sender, err := FromConfig(&config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		MailFrom: "noreply@example.com",
	})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)
}
