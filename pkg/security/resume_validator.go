package security

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxResumeSize is the upload size ceiling for resume files.
const MaxResumeSize = 10 * 1024 * 1024

// Content types accepted for resume uploads. image/* is matched by prefix.
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/zip":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateResume checks an uploaded resume against the size ceiling and the
// content-type allow-list. The returned error message is caller-facing.
func ValidateResume(contentType string, data []byte) error {
	if len(data) > MaxResumeSize {
		return fmt.Errorf("file too large")
	}
	ct := contentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(strings.ToLower(ct))
	if strings.HasPrefix(ct, "image/") {
		return nil
	}
	if !allowedResumeTypes[ct] {
		return fmt.Errorf("unsupported file type")
	}
	return nil
}

// EncodeResumeDataURL wraps uploaded file content in a self-describing
// data: URL so it can be stored without a durable file store.
func EncodeResumeDataURL(contentType string, data []byte) string {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		ct = "application/octet-stream"
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data)
}
