package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/pdf-signer/internal/models"
	"github.com/BerylCAtieno/pdf-signer/internal/pdf"
	"github.com/BerylCAtieno/pdf-signer/internal/stamp"
	"github.com/BerylCAtieno/pdf-signer/internal/utils"
)

var (
	ErrDocumentParse     = errors.New("document could not be parsed")
	ErrFontEmbed         = errors.New("stamp font could not be embedded")
	ErrDocumentSerialize = errors.New("document could not be serialized")
)

// SignatureDateLayout renders dates like "March 5, 2025".
const SignatureDateLayout = "January 2, 2006"

const (
	signatureIDPrefix    = "SIG"
	signatureSuffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	signatureSuffixLen   = 9
)

type SigningService interface {
	Sign(ctx context.Context, req *models.SignRequest) (*models.SignedDocument, error)
}

type Option func(*signingService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *signingService) { s.now = now }
}

// WithIDGenerator replaces the signature id generator.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *signingService) { s.newID = gen }
}

// WithStamp replaces the default stamp layout.
func WithStamp(st *stamp.Stamp) Option {
	return func(s *signingService) { s.stamp = st }
}

type signingService struct {
	engine pdf.Engine
	stamp  *stamp.Stamp
	now    func() time.Time
	newID  func(time.Time) string
	logger *utils.Logger
}

func NewSigningService(engine pdf.Engine, logger *utils.Logger, opts ...Option) SigningService {
	s := &signingService{
		engine: engine,
		stamp:  stamp.Default(),
		now:    time.Now,
		newID:  NewSignatureID,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign stamps req.File. Panics raised by the engine are returned as errors
// wrapping ErrDocumentParse.
func (s *signingService) Sign(ctx context.Context, req *models.SignRequest) (signed *models.SignedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			signed, err = nil, fmt.Errorf("%w: engine panic: %v", ErrDocumentParse, r)
		}
	}()

	doc, err := s.engine.Load(req.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentParse, err)
	}

	bold, err := doc.EmbedFont(pdf.HelveticaBold)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontEmbed, err)
	}
	regular, err := doc.EmbedFont(pdf.Helvetica)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontEmbed, err)
	}
	fonts := stamp.Fonts{Bold: bold, Regular: regular}

	pages, err := doc.Pages()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentParse, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrDocumentParse)
	}

	now := s.now()
	signatureDate := now.Format(SignatureDateLayout)
	signatureID := s.newID(now)

	targets := TargetPages(len(pages), req.SignAllPages)
	for _, idx := range targets {
		s.stamp.Render(pages[idx], fonts, signatureDate, signatureID)
	}

	out, err := doc.Save()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentSerialize, err)
	}

	pagesSigned := make([]int, len(targets))
	for i, idx := range targets {
		pagesSigned[i] = idx + 1
	}

	s.logger.InfoContext(ctx, "Document signed",
		"filename", req.Filename,
		"signature_id", signatureID,
		"page_count", len(pages),
		"pages_signed", len(pagesSigned),
		"input_bytes", len(req.File),
		"output_bytes", len(out))

	return &models.SignedDocument{
		Data:          out,
		SignatureID:   signatureID,
		SignatureDate: signatureDate,
		PagesSigned:   pagesSigned,
	}, nil
}

// TargetPages returns the zero-based indexes to stamp, in document order:
// every page when all is set, otherwise just the last one.
func TargetPages(pageCount int, all bool) []int {
	if pageCount <= 0 {
		return nil
	}
	if !all {
		return []int{pageCount - 1}
	}
	idx := make([]int, pageCount)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// NewSignatureID returns "SIG-<unix ms>-<9 base36 chars>". It is a display
// label and makes no uniqueness guarantee.
func NewSignatureID(at time.Time) string {
	var suffix strings.Builder
	suffix.Grow(signatureSuffixLen)
	for range signatureSuffixLen {
		suffix.WriteByte(signatureSuffixChars[rand.IntN(len(signatureSuffixChars))])
	}
	return signatureIDPrefix + "-" + strconv.FormatInt(at.UnixMilli(), 10) + "-" + suffix.String()
}
