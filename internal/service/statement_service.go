package service

import (
	"bytes"
	"context"
	"os"

	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/extract"
	"github.com/arthamitra/arthamitra-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

// StatementResult summarizes one statement import.
type StatementResult struct {
	Extracted    int                   `json:"extracted"`
	Inserted     int                   `json:"inserted"`
	Transactions []*domain.Transaction `json:"transactions"`
	ObjectPath   string                `json:"object_path,omitempty"`
}

// StatementService imports bank statement PDFs into the ledger.
type StatementService struct {
	extractor    *extract.PDFExtractor
	categorizer  *categorize.Categorizer
	transactions *TransactionService
	objects      storage.ObjectRepository
}

// NewStatementService creates a StatementService.
func NewStatementService(extractor *extract.PDFExtractor, categorizer *categorize.Categorizer, transactions *TransactionService, objects storage.ObjectRepository) *StatementService {
	return &StatementService{
		extractor:    extractor,
		categorizer:  categorizer,
		transactions: transactions,
		objects:      objects,
	}
}

// Import extracts transactions from the PDF bytes, categorizes them and
// inserts the batch. Rows failing validation are skipped, not fatal.
func (s *StatementService) Import(ctx context.Context, userID string, pdfBytes []byte) (*StatementResult, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	// The pdf reader wants a file on disk.
	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(pdfBytes); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	extracted, err := s.extractor.ExtractTransactions(ctx, tmp.Name())
	if err != nil {
		return nil, err
	}
	if len(extracted) == 0 {
		return nil, domain.ErrExtractionFailed
	}

	descriptions := make([]string, len(extracted))
	for i, t := range extracted {
		descriptions[i] = t.Description
	}
	categories, err := s.categorizer.CategorizeBatch(ctx, descriptions)
	if err != nil {
		log.Warn().Err(err).Msg("Statement categorization failed, defaulting to Other")
		categories = nil
	}

	txns := make([]*domain.Transaction, len(extracted))
	for i, t := range extracted {
		category := categorize.CategoryOther
		if i < len(categories) && categories[i] != "" {
			category = categories[i]
		}
		txns[i] = &domain.Transaction{
			UserID:      userID,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    category,
			Description: t.Description,
			Merchant:    t.Merchant,
			Date:        t.Date,
		}
	}

	inserted, err := s.transactions.CreateBatch(ctx, userID, txns)
	if err != nil {
		return nil, err
	}

	objectPath := storage.StatementObjectPath(userID, ".pdf")
	if _, err := s.objects.Upload(ctx, objectPath, bytes.NewReader(pdfBytes), "application/pdf", int64(len(pdfBytes))); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to archive statement pdf")
		objectPath = ""
	}

	return &StatementResult{
		Extracted:    len(extracted),
		Inserted:     inserted,
		Transactions: txns,
		ObjectPath:   objectPath,
	}, nil
}
