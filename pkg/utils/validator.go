package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var bannerIDRegex = regexp.MustCompile(`^B\d{8}$`)

// ValidateBannerID validates a Banner identifier (B followed by 8 digits)
func ValidateBannerID(bannerID string) error {
	if !bannerIDRegex.MatchString(bannerID) {
		return fmt.Errorf("invalid banner ID format: %s", bannerID)
	}
	return nil
}

// allowed upload extensions for dossiers and supporting documents
var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidateDocumentFilename validates an uploaded document's filename
func ValidateDocumentFilename(filename string) error {
	base := filepath.Base(filename)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return fmt.Errorf("invalid filename: %s", filename)
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !allowedDocumentExtensions[ext] {
		return fmt.Errorf("unsupported document type %q, expected PDF or Word", ext)
	}
	return nil
}

// ValidateRenewalYears validates a contract extension length
func ValidateRenewalYears(years int) error {
	if years <= 0 {
		return fmt.Errorf("renewal years must be positive: %d", years)
	}
	if years > 10 {
		return fmt.Errorf("renewal years exceeds maximum of 10: %d", years)
	}
	return nil
}
