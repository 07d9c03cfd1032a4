package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRCodeService_GenerateLinkQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateLinkQR("https://app.example.com/auth/verify-email?token=abc")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

func TestQRCodeService_DefaultsToMediumLevel(t *testing.T) {
	svc := NewQRCodeService(128, "bogus")

	png, err := svc.GenerateLinkQR("https://app.example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}
