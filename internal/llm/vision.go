package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/extract"
)

const visionTimeout = 30 * time.Second

// Vision reads receipt images through the gateway's multimodal providers.
// Implements extract.VisionOCR.
type Vision struct {
	gw *Gateway
}

// NewVision creates a gateway-backed receipt reader.
func NewVision(gw *Gateway) *Vision {
	return &Vision{gw: gw}
}

func (v *Vision) IsConfigured() bool {
	return v.gw.IsConfigured()
}

const receiptPrompt = `Read this receipt image and respond with only a JSON object:
{"merchant_name": string, "date": "YYYY-MM-DD or empty", "total_amount": number,
 "currency": string, "items": [{"name": string, "quantity": number, "price": number}],
 "category": string, "payment_method": string}
Use null for fields you cannot read. Amounts are plain numbers without currency symbols.`

// ExtractReceipt sends the image inline and parses the structured answer.
func (v *Vision) ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*extract.ReceiptData, error) {
	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))

	resp, err := v.gw.Chat(ctx, &Request{
		Messages: []Message{{
			Role:         RoleUser,
			Content:      receiptPrompt,
			ImageDataURL: dataURL,
		}},
		MaxTokens:   800,
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	var data extract.ReceiptData
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &data); err != nil {
		return nil, fmt.Errorf("llm: parsing receipt: %w", err)
	}
	data.RawText = resp.Content
	return &data, nil
}
