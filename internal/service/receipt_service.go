package service

import (
	"bytes"
	"context"
	"path"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/extract"
	"github.com/arthamitra/arthamitra-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// maxReceiptDimension is the longest edge sent to the vision provider.
// Larger images are downscaled before OCR to keep token cost bounded.
const maxReceiptDimension = 2048

// ReceiptResult is the outcome of scanning one receipt image.
type ReceiptResult struct {
	Transaction *domain.Transaction  `json:"transaction"`
	Receipt     *extract.ReceiptData `json:"receipt"`
	ObjectPath  string               `json:"object_path,omitempty"`
}

// ReceiptService turns receipt images into ledger transactions.
type ReceiptService struct {
	vision       extract.VisionOCR
	categorizer  *categorize.Categorizer
	transactions *TransactionService
	objects      storage.ObjectRepository
}

// NewReceiptService creates a ReceiptService. objects may be a
// NoOpObjectRepository when storage is unconfigured.
func NewReceiptService(vision extract.VisionOCR, categorizer *categorize.Categorizer, transactions *TransactionService, objects storage.ObjectRepository) *ReceiptService {
	return &ReceiptService{
		vision:       vision,
		categorizer:  categorizer,
		transactions: transactions,
		objects:      objects,
	}
}

// Scan OCRs the image, categorizes the result and books the expense.
// The original image is archived in object storage; archival failure is
// logged but does not fail the scan.
func (s *ReceiptService) Scan(ctx context.Context, userID, filename string, imageBytes []byte, mimeType string) (*ReceiptResult, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if !s.vision.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}

	prepared, preparedMime := downscaleReceipt(imageBytes, mimeType)

	data, err := s.vision.ExtractReceipt(ctx, prepared, preparedMime)
	if err != nil {
		return nil, err
	}
	if data.TotalAmount <= 0 {
		return nil, domain.ErrExtractionFailed
	}

	raw := extract.NormalizeReceipt(data, time.Now())

	category := data.Category
	if category == "" {
		if cat, err := s.categorizer.Categorize(ctx, raw.Description); err == nil {
			category = cat
		}
	}

	objectPath := storage.ReceiptObjectPath(userID, receiptExt(filename, mimeType))
	if _, err := s.objects.Upload(ctx, objectPath, bytes.NewReader(imageBytes), mimeType, int64(len(imageBytes))); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to archive receipt image")
		objectPath = ""
	}

	txn, err := s.transactions.Create(ctx, &domain.Transaction{
		UserID:        userID,
		Amount:        raw.Amount,
		Type:          raw.Type,
		Category:      category,
		Description:   raw.Description,
		Merchant:      raw.Merchant,
		Date:          raw.Date,
		PaymentMethod: data.PaymentMethod,
		ReceiptURL:    objectPath,
	})
	if err != nil {
		return nil, err
	}

	return &ReceiptResult{Transaction: txn, Receipt: data, ObjectPath: objectPath}, nil
}

// downscaleReceipt resizes oversized images so the longest edge fits
// maxReceiptDimension. Undecodable input passes through untouched; the
// vision provider gets to reject it with a better error.
func downscaleReceipt(imageBytes []byte, mimeType string) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return imageBytes, mimeType
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxReceiptDimension && h <= maxReceiptDimension {
		return imageBytes, mimeType
	}

	if w >= h {
		img = imaging.Resize(img, maxReceiptDimension, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, maxReceiptDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return imageBytes, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}

func receiptExt(filename, mimeType string) string {
	if ext := path.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
