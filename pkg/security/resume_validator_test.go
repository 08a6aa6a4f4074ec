package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobspring-backend/pkg/security"
)

func TestValidateResume(t *testing.T) {
	t.Run("Should accept the documented document types", func(t *testing.T) {
		for _, ct := range []string{
			"application/pdf",
			"application/zip",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"image/png",
			"image/jpeg",
		} {
			assert.NoError(t, security.ValidateResume(ct, []byte("content")), ct)
		}
	})

	t.Run("Should ignore content type parameters and casing", func(t *testing.T) {
		assert.NoError(t, security.ValidateResume("Application/PDF; charset=binary", []byte("content")))
	})

	t.Run("Should reject executables and other types", func(t *testing.T) {
		err := security.ValidateResume("application/x-msdownload", []byte("MZ"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file type")
	})

	t.Run("Should reject oversized files", func(t *testing.T) {
		big := make([]byte, security.MaxResumeSize+1)
		err := security.ValidateResume("application/pdf", big)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "file too large")
	})
}

func TestEncodeResumeDataURL(t *testing.T) {
	t.Run("Should produce a self-describing data URL", func(t *testing.T) {
		url := security.EncodeResumeDataURL("application/pdf", []byte("hello"))
		assert.True(t, strings.HasPrefix(url, "data:application/pdf;base64,"))
		assert.Contains(t, url, "aGVsbG8=")
	})

	t.Run("Should default the content type when missing", func(t *testing.T) {
		url := security.EncodeResumeDataURL("", []byte{0x01})
		assert.True(t, strings.HasPrefix(url, "data:application/octet-stream;base64,"))
	})
}
