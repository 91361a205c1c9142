// Package export renders placement plans to review documents. The
// preview PDF shows, per planned placement, the slide with its
// existing shapes and the rectangle the new figure will land in, plus
// a QR code carrying the machine-readable plan.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/slidefig/slidefig/internal/model"
)

// Preview pairs one planned placement with the snapshot it was planned
// against.
type Preview struct {
	Snapshot model.SlideSnapshot `json:"snapshot"`
	Plan     model.PlacementPlan `json:"plan"`
	Figure   string              `json:"figure"` // image path or label, informational
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	qrSize       = 24.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// shapeColor returns the fill color for an existing shape by kind.
func shapeColor(sh model.ShapeRecord) (r, g, b int) {
	switch {
	case sh.IsPicture():
		return 33, 150, 243 // blue
	case sh.Kind == model.ShapePlaceholder:
		return 255, 235, 190 // pale amber
	default:
		return 224, 224, 224 // gray
	}
}

// ExportPreview writes one PDF page per planned placement.
func ExportPreview(path string, previews []Preview) error {
	if len(previews) == 0 {
		return fmt.Errorf("no placements to preview")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, pv := range previews {
		pdf.AddPage()
		if err := renderPreviewPage(pdf, pv, i+1); err != nil {
			return fmt.Errorf("rendering preview page %d: %w", i+1, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderPreviewPage draws a single planned placement on the current page.
func renderPreviewPage(pdf *fpdf.Fpdf, pv Preview, pageNum int) error {
	snap := pv.Snapshot
	plan := pv.Plan

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Placement %d: slide %s (%.0f x %.0f px)", pageNum, snap.SlideID, snap.Dims.Width, snap.Dims.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Figure: %s | Target: (%.1f, %.1f) %.1f x %.1f | Host: %s | Delete: %d | Fill: %d",
		pv.Figure, plan.FinalRect.X, plan.FinalRect.Y, plan.FinalRect.W, plan.FinalRect.H,
		orDash(plan.HostPlaceholder), len(plan.DeletePlaceholders), len(plan.FillPlaceholders))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area, leaving room for the QR code on the right
	drawWidth := pageWidth - marginLeft - marginRight - qrSize - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scaleX := drawWidth / snap.Dims.Width
	scaleY := drawHeight / snap.Dims.Height
	scale := math.Min(scaleX, scaleY)

	canvasW := snap.Dims.Width * scale
	canvasH := snap.Dims.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Slide background
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	deleted := make(map[string]bool, len(plan.DeletePlaceholders))
	for _, id := range plan.DeletePlaceholders {
		deleted[id] = true
	}

	// Existing shapes
	for _, sh := range snap.Shapes {
		sx := offsetX + sh.Rect.X*scale
		sy := offsetY + sh.Rect.Y*scale
		sw := sh.Rect.W * scale
		sht := sh.Rect.H * scale

		r, g, b := shapeColor(sh)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(sx, sy, sw, sht, "FD")

		if deleted[sh.ID] || sh.ID == plan.ReplaceTarget {
			drawHatchPattern(pdf, sx, sy, sw, sht)
		}

		if sw > 15 && sht > 6 {
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(60, 60, 60)
			label := fmt.Sprintf("%s %s", sh.Kind, sh.ID)
			labelW := pdf.GetStringWidth(label)
			if labelW < sw-2 {
				pdf.SetXY(sx+(sw-labelW)/2, sy+sht/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	// The planned rectangle on top
	fx := offsetX + plan.FinalRect.X*scale
	fy := offsetY + plan.FinalRect.Y*scale
	fw := plan.FinalRect.W * scale
	fh := plan.FinalRect.H * scale
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.8)
	pdf.Rect(fx, fy, fw, fh, "D")

	pdf.SetTextColor(0, 0, 0)

	return drawPlanQR(pdf, pv, pageNum)
}

// drawPlanQR places a QR code with the plan JSON in the top-right
// corner of the drawing area.
func drawPlanQR(pdf *fpdf.Fpdf, pv Preview, pageNum int) error {
	payload, err := json.Marshal(struct {
		SlideID string              `json:"slide_id"`
		Plan    model.PlacementPlan `json:"plan"`
	}{pv.Snapshot.SlideID, pv.Plan})
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generating QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_plan_%d", pageNum)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, drawAreaTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark
// shapes the plan removes.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
