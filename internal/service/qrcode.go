package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the customer ordering URL for a table so a scan
// lands straight on the menu/submission page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(tableID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/qr?table_id=%d", g.BaseURL, tableID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var _ QRGenerator = (DefaultQRGenerator{})
