package utils

import "testing"

func TestValidateBannerID(t *testing.T) {
	tests := []struct {
		bannerID string
		wantErr  bool
	}{
		{"B00123456", false},
		{"B99999999", false},
		{"b00123456", true},
		{"B0012345", true},
		{"B001234567", true},
		{"A00123456", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateBannerID(tt.bannerID)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBannerID(%q) error = %v, wantErr %v", tt.bannerID, err, tt.wantErr)
		}
	}
}

func TestValidateDocumentFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"dossier.pdf", false},
		{"letter.docx", false},
		{"review.DOC", false},
		{"notes.txt", true},
		{"archive.zip", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDocumentFilename(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDocumentFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
		}
	}
}

func TestValidateRenewalYears(t *testing.T) {
	tests := []struct {
		years   int
		wantErr bool
	}{
		{1, false},
		{3, false},
		{10, false},
		{0, true},
		{-1, true},
		{11, true},
	}

	for _, tt := range tests {
		err := ValidateRenewalYears(tt.years)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRenewalYears(%d) error = %v, wantErr %v", tt.years, err, tt.wantErr)
		}
	}
}
