package models

const (
	ContentTypePDF = "application/pdf"

	MaxFileSizeBytes = int64(10_485_760) // 10 MiB, enforced client side
)

// SignRequest is a decoded sign call.
type SignRequest struct {
	File         []byte
	Filename     string
	ContentType  string
	SignAllPages bool
}

// SignedDocument is the stamped output of one sign call.
type SignedDocument struct {
	Data          []byte `json:"-"`
	SignatureID   string `json:"signature_id"`
	SignatureDate string `json:"signature_date"`
	PagesSigned   []int  `json:"pages_signed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
