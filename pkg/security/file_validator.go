package security

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"go-hiring-sync/pkg/apperror"
)

// MaxResumeSize is the largest accepted resume attachment.
const MaxResumeSize = 5 << 20

// Resume MIME types
const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Magic byte signatures per allowed extension
var magicBytes = map[string][]byte{
	".pdf":  {0x25, 0x50, 0x44, 0x46},                         // %PDF
	".doc":  {0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, // OLE compound document
	".docx": {0x50, 0x4B, 0x03, 0x04},                         // ZIP (PK..)
}

// Declared content types accepted per extension. Browsers often send DOCX as
// a zip or octet-stream; the magic bytes decide in that case.
var allowedMIME = map[string]map[string]bool{
	".pdf":  {MIMEPDF: true},
	".doc":  {MIMEDOC: true, "application/octet-stream": true},
	".docx": {MIMEDOCX: true, "application/zip": true, "application/octet-stream": true},
}

// ValidateResume checks size, extension, declared MIME type and magic bytes.
// Violations are returned as bad requests with a user-facing message.
func ValidateResume(filename, contentType string, data []byte) error {
	if len(data) == 0 {
		return apperror.BadRequest("resume file is empty")
	}
	if len(data) > MaxResumeSize {
		return apperror.BadRequest(fmt.Sprintf("resume exceeds %d MB", MaxResumeSize>>20))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	types, ok := allowedMIME[ext]
	if !ok {
		return apperror.BadRequest("only PDF, DOC and DOCX resumes are accepted")
	}

	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if mime != "" && !types[mime] {
		return apperror.BadRequest("content type not allowed for " + ext + ": " + mime)
	}

	if !bytes.HasPrefix(data, magicBytes[ext]) {
		return apperror.BadRequest("file content does not match extension")
	}
	return nil
}

// ResumeContentType returns the canonical MIME type for an accepted resume name.
func ResumeContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".doc":
		return MIMEDOC
	case ".docx":
		return MIMEDOCX
	}
	return "application/octet-stream"
}
