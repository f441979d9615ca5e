package models

type SourceKind string
type ImageQuality string

const (
	SourceDocument SourceKind = "DOCUMENT"
	SourcePixText  SourceKind = "PIX_TEXT"

	QualityGood   ImageQuality = "GOOD"
	QualityMedium ImageQuality = "MEDIUM"
	QualityPoor   ImageQuality = "POOR"
)

func (k SourceKind) IsValid() bool {
	switch k {
	case SourceDocument, SourcePixText:
		return true
	default:
		return false
	}
}

// ExtractedDocument is the normalized output of extraction. RawText is always
// populated (possibly empty); every other field is best-effort and may be
// absent. One instance per verification request, immutable after extraction.
type ExtractedDocument struct {
	Barcode            string       `json:"barcode,omitempty"`
	PixKey             string       `json:"pix_key,omitempty"`
	Amount             *float64     `json:"amount,omitempty"`
	PayeeName          string       `json:"payee_name,omitempty"`
	DueDate            string       `json:"due_date,omitempty"`
	RawText            string       `json:"raw_text"`
	ImageQuality       ImageQuality `json:"image_quality"`
	PossiblyTampered   bool         `json:"possibly_tampered"`
	SuspiciousLanguage bool         `json:"suspicious_language"`
}
