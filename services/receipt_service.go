package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin    = 36.0
	receiptWidth  = 300.0
	lineGap       = 16.0
	logoSize      = 58.0
	receiptRadius = 6.0
)

// ReceiptService lays out the payment receipt PDF. Coordinates below are in
// points from the bottom-left corner of a US Letter page; canvas flips them
// for fpdf.
type ReceiptService struct {
	LogoPath string
	// Compress can be turned off to keep page text searchable.
	Compress bool
}

func NewReceiptService(staticRoot string) *ReceiptService {
	return &ReceiptService{
		LogoPath: filepath.Join(staticRoot, "images", "logo.png"),
		Compress: true,
	}
}

// Render writes the receipt for a paid booking with Hostel and Room loaded.
func (s *ReceiptService) Render(w io.Writer, b *models.Booking) error {
	if !b.IsPaid {
		return ErrNotPaid
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(s.Compress)
	pdf.SetTitle("Payment receipt "+b.ReceiptNumber, true)
	pdf.SetCreator("hostel-backend", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()

	_, height := pdf.GetPageSize()
	c := &canvas{pdf: pdf, height: height, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	receiptHeight := height - 2*pageMargin
	x, y := pageMargin, pageMargin
	asideX := x + receiptWidth + 28

	// Receipt card
	c.fill("#ffffff")
	c.stroke("#d5dbe3")
	pdf.SetLineWidth(1)
	c.roundRect(x, y, receiptWidth, receiptHeight, receiptRadius)

	// Logo + header
	if _, err := os.Stat(s.LogoPath); err == nil {
		c.image(s.LogoPath, x+16, height-110, logoSize, logoSize)
	}
	c.text("#2d3748")
	c.font("B", 12)
	c.drawString(x+80, height-70, "STUDENT HUB HOSTEL")
	c.font("", 9)
	c.text("#4a5568")
	c.drawString(x+80, height-84, "PAYMENT RECEIPT")

	// Key details block
	paidAt := ""
	if b.PaidAt != nil {
		paidAt = b.PaidAt.UTC().Format("2006-01-02 15:04")
	}
	c.font("", 9)
	c.text("#4a5568")
	c.drawString(x+16, height-135, "Receipt #: "+b.ReceiptNumber)
	c.drawString(x+16, height-150, "Date: "+paidAt)

	// Table header
	tableTop := height - 185
	c.fill("#edf2f7")
	c.rect(x+12, tableTop-20, receiptWidth-24, 20)
	c.text("#2d3748")
	c.font("B", 9)
	c.drawString(x+18, tableTop-14, "Description")
	c.drawRightString(x+receiptWidth-18, tableTop-14, "Amount")

	// Table rows
	amount := utils.FormatTZS(b.AmountPaid)
	c.font("", 9)
	c.text("#2d3748")
	rowY := tableTop - 38
	c.drawString(x+18, rowY, "Hostel: "+b.Hostel.Name)
	c.drawRightString(x+receiptWidth-18, rowY, amount)
	c.text("#4a5568")
	for _, line := range []string{
		"Room: " + b.Room.Name,
		fmt.Sprintf("Dates: %s to %s", models.FormatDate(b.CheckIn), models.FormatDate(b.CheckOut)),
		"Nights: " + strconv.Itoa(b.Nights()),
		"Guest: " + b.GuestName,
		"Email: " + b.GuestEmail,
	} {
		rowY -= lineGap
		c.drawString(x+18, rowY, line)
	}

	// Total section
	totalY := y + 70
	c.fill("#f7fafc")
	c.rect(x+12, totalY, receiptWidth-24, 32)
	c.text("#2d3748")
	c.font("B", 10)
	c.drawString(x+18, totalY+10, "TOTAL PAID")
	c.drawRightString(x+receiptWidth-18, totalY+10, amount)

	// Footer note
	c.font("", 8.5)
	c.text("#718096")
	c.drawString(x+16, y+30, "Payment confirmed. Thank you for your booking.")

	// Right-side panel
	c.text("#2d3748")
	c.font("B", 18)
	c.drawString(asideX, height-120, "Payment Receipt")
	c.font("", 9.5)
	c.text("#4a5568")
	c.drawString(asideX, height-150, "Keep this receipt for your records.")
	c.drawString(asideX, height-165, "We appreciate your stay.")

	return pdf.Output(w)
}

type canvas struct {
	pdf    *fpdf.Fpdf
	height float64
	tr     func(string) string
}

func (c *canvas) font(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *canvas) fill(hex string) {
	r, g, b := hexRGB(hex)
	c.pdf.SetFillColor(r, g, b)
}

func (c *canvas) stroke(hex string) {
	r, g, b := hexRGB(hex)
	c.pdf.SetDrawColor(r, g, b)
}

func (c *canvas) text(hex string) {
	r, g, b := hexRGB(hex)
	c.pdf.SetTextColor(r, g, b)
}

// rect fills a rectangle whose bottom-left corner is (x, y).
func (c *canvas) rect(x, y, w, h float64) {
	c.pdf.Rect(x, c.height-y-h, w, h, "F")
}

func (c *canvas) roundRect(x, y, w, h, r float64) {
	c.pdf.RoundedRect(x, c.height-y-h, w, h, r, "1234", "FD")
}

func (c *canvas) drawString(x, y float64, s string) {
	c.pdf.Text(x, c.height-y, c.tr(s))
}

func (c *canvas) drawRightString(x, y float64, s string) {
	s = c.tr(s)
	c.pdf.Text(x-c.pdf.GetStringWidth(s), c.height-y, s)
}

// image draws path centered in the w×h box at (x, y), keeping its aspect ratio.
func (c *canvas) image(path string, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ReadDpi: true}
	info := c.pdf.RegisterImageOptions(path, opts)
	if info == nil || info.Width() == 0 || info.Height() == 0 {
		return
	}
	scale := w / info.Width()
	if s := h / info.Height(); s < scale {
		scale = s
	}
	iw, ih := info.Width()*scale, info.Height()*scale
	left := x + (w-iw)/2
	bottom := y + (h-ih)/2
	c.pdf.ImageOptions(path, left, c.height-bottom-ih, iw, ih, false, opts, 0, "")
}

func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
