// Package documents renders customer-facing bill documents.
package documents

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Bill.BillNumber}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
    h1 { margin-bottom: 0; }
    .muted { color: #777; }
    table { width: 100%; border-collapse: collapse; margin-top: 24px; }
    th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
    td.num, th.num { text-align: right; }
    .totals { margin-top: 16px; width: 320px; margin-left: auto; }
    .totals td { border: none; padding: 4px 8px; }
    .grand { font-weight: bold; border-top: 2px solid #222; }
  </style>
</head>
<body>
  <h1>{{.ShopName}}</h1>
  <p class="muted">Bill {{.Bill.BillNumber}} &middot; {{.Bill.CreatedAt.Format "02 Jan 2006 15:04"}}</p>

  <p>
    <strong>{{.Bill.CustomerName}}</strong><br>
    {{if .Bill.CustomerPhone}}{{.Bill.CustomerPhone}}<br>{{end}}
    {{if .Bill.CustomerEmail}}{{.Bill.CustomerEmail}}{{end}}
  </p>

  <table>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Subtotal</th></tr>
    {{range .Bill.Items}}
    <tr>
      <td>{{if .Item}}{{.Item.Name}}{{else}}Item #{{.ItemID}}{{end}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{money .UnitPrice}}</td>
      <td class="num">{{money .Subtotal}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Total</td><td class="num">{{money .Bill.TotalAmount}}</td></tr>
    <tr><td>Discount ({{money .Bill.Discount}}%)</td><td class="num">-{{money .DiscountAmount}}</td></tr>
    <tr><td>Tax ({{money .Bill.TaxRate}}%)</td><td class="num">{{money .TaxAmount}}</td></tr>
    <tr class="grand"><td>Amount Due</td><td class="num">{{money .Bill.FinalAmount}}</td></tr>
  </table>

  {{if .Bill.Notes}}<p class="muted">{{.Bill.Notes}}</p>{{end}}
  <p class="muted">Thank you for shopping with us.</p>
</body>
</html>
`))

// RenderBill produces the printable HTML document for a committed bill.
// Items should be loaded with their catalog rows for item names.
func RenderBill(bill models.Bill) ([]byte, error) {
	discountAmount := bill.TotalAmount * bill.Discount / 100
	taxAmount := (bill.TotalAmount - discountAmount) * bill.TaxRate / 100

	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, struct {
		ShopName       string
		Bill           models.Bill
		DiscountAmount float64
		TaxAmount      float64
	}{
		ShopName:       config.ShopName(),
		Bill:           bill,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("documents: render bill %s: %w", bill.BillNumber, err)
	}
	return buf.Bytes(), nil
}

// FileName is the canonical archive and attachment name for a bill document.
func FileName(bill models.Bill) string {
	return bill.BillNumber + ".html"
}
