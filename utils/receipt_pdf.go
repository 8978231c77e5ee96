package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"givebridge/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))

// BuildReceiptHTML fills in the derived receipt fields and renders the template.
func BuildReceiptHTML(data *models.ReceiptData) ([]byte, error) {
	if data == nil || data.Item == nil {
		return nil, fmt.Errorf("receipt without item")
	}

	data.Date = "-"
	if !data.Item.UpdatedAt.IsZero() {
		data.Date = data.Item.UpdatedAt.Format("02-Jan-2006")
	}
	data.ValueWords = NumberToCurrencyWords(data.Item.EstimatedValue)
	data.ReceiptNumber = "GB-" + strings.ToUpper(data.Item.ID.Hex())

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateReceiptPDF renders the receipt and prints it to an A4 PDF with headless Chrome.
func GenerateReceiptPDF(ctx context.Context, data *models.ReceiptData) ([]byte, error) {
	html, err := BuildReceiptHTML(data)
	if err != nil {
		return nil, err
	}

	tmpHTML := filepath.Join(os.TempDir(), "receipt_"+data.Item.ID.Hex()+"_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, html, 0o600); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print receipt: %w", err)
	}
	return pdfBuf, nil
}
