// Package renderer lays out the verification certificate as a one-page PDF.
package renderer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"ownerverify/internal/certificate/models"
)

const dateLayout = "January 2, 2006"

// PDFRenderer draws a fixed layout: title, owner, dates, hash and a QR code
// carrying the validation payload.
type PDFRenderer struct {
	issuer string
}

func New(issuer string) *PDFRenderer {
	if issuer == "" {
		issuer = "Business Permitting Office"
	}
	return &PDFRenderer{issuer: issuer}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(ctx context.Context, p models.RenderPayload) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qrPng, err := qrcode.Encode(p.QRCodeData, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetDrawColor(30, 60, 110)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 190, 277, "D")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetY(30)
	pdf.CellFormat(0, 12, "Certificate of Verification", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(r.issuer), "", 1, "C", false, 0, "")

	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "This certifies that", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(p.OwnerName), "", 1, "C", false, 0, "")
	if p.BusinessName != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, tr(p.BusinessName), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, "has completed identity, address and business affiliation verification.", "", "C", false)

	pdf.Ln(10)
	rows := [][2]string{
		{"Certificate number", p.CertificateNumber},
		{"Verified on", p.VerifiedAt.UTC().Format(dateLayout)},
		{"Issued on", p.IssuedAt.UTC().Format(dateLayout)},
		{"Valid until", p.ExpiresAt.UTC().Format(dateLayout)},
	}
	for _, row := range rows {
		pdf.SetX(40)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("qr", 80, 175, 50, 50, false, opts, 0, "")

	pdf.SetY(232)
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 5, "Verification hash: "+p.VerificationHash, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Validate at "+p.ValidationURL, "", 1, "C", false, 0, p.ValidationURL)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}
