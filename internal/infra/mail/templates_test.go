package mail

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderVerification(t *testing.T, data verificationData) string {
	t.Helper()

	tmpl, err := template.New("emails").Parse(emailTemplates)
	require.NoError(t, err)

	var body bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&body, "verification", data))

	return body.String()
}

func TestVerificationTemplate(t *testing.T) {
	html := renderVerification(t, verificationData{
		Name:    "Alice",
		Link:    "https://app.example.com/auth/verify-email?token=abc123",
		AppName: "passage",
		QRImage: "aGVsbG8=",
	})

	assert.Contains(t, html, "Hi Alice,")
	assert.Contains(t, html, "passage")
	assert.Contains(t, html, "https://app.example.com/auth/verify-email?token=abc123")
	assert.Contains(t, html, "data:image/png;base64,aGVsbG8=")
}

func TestVerificationTemplate_WithoutQR(t *testing.T) {
	html := renderVerification(t, verificationData{
		Name:    "Bob",
		Link:    "https://app.example.com/auth/verify-email?token=xyz",
		AppName: "passage",
	})

	assert.NotContains(t, html, "data:image/png")
	assert.Contains(t, html, "https://app.example.com/auth/verify-email?token=xyz")
}

func TestVerificationTemplate_EscapesName(t *testing.T) {
	html := renderVerification(t, verificationData{
		Name:    "<script>alert(1)</script>",
		Link:    "https://app.example.com/auth/verify-email?token=abc",
		AppName: "passage",
	})

	assert.NotContains(t, html, "<script>alert(1)</script>")
}
