package dto

// VerificationRequest is the POST /verifications body: the raw OCR text or
// PIX payload plus the customer asking for the check. RawText may be empty;
// the pipeline degrades instead of rejecting unreadable documents.
type VerificationRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	RawText    string `json:"raw_text"`
	SourceKind string `json:"source_kind"`
}

// ScamReportRequest is the POST /scam-reports body.
type ScamReportRequest struct {
	CustomerID string   `json:"customer_id" binding:"required"`
	PayeeName  string   `json:"payee_name,omitempty"`
	Barcode    string   `json:"barcode,omitempty"`
	PixKey     string   `json:"pix_key,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Kind       string   `json:"kind,omitempty"`
}
