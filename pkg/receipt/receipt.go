// Package receipt renders a PDF receipt for an order. The artifact is
// ephemeral: it exists for the duration of one email send and the caller
// must Remove it on every exit path.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"orderdesk/order"
)

// Renderer writes receipt PDFs into a scoped directory.
type Renderer struct {
	dir      string
	company  string
	logoPath string
}

// NewRenderer creates a renderer. dir defaults to the system temp directory;
// logoPath is optional and skipped when the file does not exist.
func NewRenderer(dir, company, logoPath string) *Renderer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Renderer{dir: dir, company: company, logoPath: logoPath}
}

// File is a handle to a rendered receipt on disk.
type File struct {
	path string
}

// Path returns the location of the PDF.
func (f *File) Path() string { return f.path }

// Remove deletes the artifact. Safe to call after a failed send and safe to
// call twice.
func (f *File) Remove() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Render writes the receipt PDF for o, uniquely named by order number, and
// returns its handle. Callers should defer Remove immediately.
func (r *Renderer) Render(o order.Order) (*File, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, 10, 10, 35, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.SetY(50)
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, r.company, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Order #: %s", o.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Name: %s", o.Customer.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Email: %s", o.Customer.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Phone: %s", o.Customer.Phone), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Address: %s", o.Customer.Address), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Order Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for i, item := range o.Items {
		line := fmt.Sprintf("%d. %s x %d @ $%s", i+1, item.Name, item.Quantity, item.Price.StringFixed(2))
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	total, err := order.TotalMinorUnits(o.Items)
	if err != nil {
		return nil, fmt.Errorf("computing total: %w", err)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: $%s", order.FormatTotal(total)), "", 1, "L", false, 0, "")

	path := filepath.Join(r.dir, fmt.Sprintf("receipt-%s.pdf", o.Number))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("writing receipt %s: %w", path, err)
	}
	return &File{path: path}, nil
}
