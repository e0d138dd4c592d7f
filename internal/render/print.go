package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF 打印端：A4 纵版，毫米坐标直接使用布局计划的数值。
// 块超出页底自动换页，每页页脚带页码。返回字节流和总页数。
func RenderPDF(plan *Plan) ([]byte, int, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, Margin)

	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(hexRGB(plan.Palette.Accent))
		pdf.SetXY(Margin, PageHeight-10)
		footer := fmt.Sprintf("%s · page %d", plan.Footer, pdf.PageNo())
		pdf.CellFormat(ContentW, 6, footer, "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	w := &pdfWalker{pdf: pdf, plan: plan, y: Margin}
	for _, b := range plan.Blocks {
		w.block(b)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pdf.PageCount(), nil
}

type pdfWalker struct {
	pdf     *gofpdf.Fpdf
	plan    *Plan
	y       float64
	iconSeq int
}

// ensure 页底余量不足时换页
func (w *pdfWalker) ensure(height float64) {
	if w.y+height > PageHeight-Margin-8 {
		w.pdf.AddPage()
		w.y = Margin
	}
}

func (w *pdfWalker) setText(pt float64, hex string, style string) {
	w.pdf.SetFont("Helvetica", style, pt)
	w.pdf.SetTextColor(hexRGB(hex))
}

func (w *pdfWalker) block(b Block) {
	p := w.plan.Palette
	f := w.plan.Fonts

	if b.Kind == BlockPageBreak {
		w.pdf.AddPage()
		w.y = Margin
		return
	}
	w.ensure(b.Height)

	switch b.Kind {
	case BlockTitle:
		w.setText(f.Title, p.Primary, "B")
		w.pdf.SetXY(Margin, w.y)
		w.pdf.CellFormat(ContentW, b.Height, b.Text, "", 0, "C", false, 0, "")

	case BlockHeading:
		w.setText(f.Heading, p.Primary, "B")
		w.pdf.SetXY(Margin, w.y)
		w.pdf.CellFormat(ContentW, b.Height, b.Text, "", 0, "L", false, 0, "")

	case BlockBreathing:
		w.pdf.SetFillColor(hexRGB(p.Soft))
		w.pdf.RoundedRect(Margin, w.y, ContentW, b.Height-4, 3, "1234", "F")
		w.pdf.SetDrawColor(hexRGB(p.Primary))
		w.pdf.SetLineWidth(0.5)
		w.pdf.Circle(Margin+14, w.y+(b.Height-4)/2, 7, "D")
		w.setText(f.Body, p.Primary, "")
		w.pdf.SetXY(Margin+26, w.y)
		w.pdf.CellFormat(ContentW-30, b.Height-4, b.Text, "", 0, "L", false, 0, "")

	case BlockWordTrace:
		w.setText(f.Word, p.Accent, "")
		w.pdf.SetXY(Margin+4, w.y)
		w.pdf.CellFormat(ContentW-8, b.Height-6, spaced(b.Text), "", 0, "L", false, 0, "")
		w.pdf.SetDrawColor(hexRGB(p.Accent))
		w.pdf.SetLineWidth(0.3)
		w.pdf.SetDashPattern([]float64{2, 1.5}, 0)
		w.pdf.Line(Margin+2, w.y+b.Height-5, PageWidth-Margin-2, w.y+b.Height-5)
		w.pdf.SetDashPattern([]float64{}, 0)

	case BlockWordLine:
		w.pdf.SetFillColor(hexRGB(p.Primary))
		w.pdf.Circle(Margin+4, w.y+b.Height*0.45, 1, "F")
		w.setText(f.Word, p.Primary, "")
		w.pdf.SetXY(Margin+10, w.y)
		w.pdf.CellFormat(ContentW*0.6, b.Height, b.Text, "", 0, "L", false, 0, "")
		if len(b.Chunks) > 0 {
			w.setText(f.Body, p.Accent, "")
			w.pdf.SetXY(Margin+ContentW*0.6, w.y)
			w.pdf.CellFormat(ContentW*0.4-10, b.Height, strings.Join(b.Chunks, " - "), "", 0, "R", false, 0, "")
		}

	case BlockLetterRow:
		w.setText(f.Body, p.Primary, "")
		w.pdf.SetXY(Margin, w.y)
		w.pdf.CellFormat(ContentW, 5, fmt.Sprintf("Find every %s", b.Text), "", 0, "L", false, 0, "")
		cellW := ContentW / float64(len(b.Cells))
		w.pdf.SetFillColor(hexRGB(p.Soft))
		w.pdf.SetDrawColor(hexRGB(p.Accent))
		w.pdf.SetLineWidth(0.3)
		for i, cell := range b.Cells {
			x := Margin + float64(i)*cellW
			w.pdf.RoundedRect(x+1, w.y+7, cellW-2, b.Height-9, 2, "1234", "FD")
			w.setText(f.Word, p.Primary, "")
			w.pdf.SetXY(x+1, w.y+7)
			w.pdf.CellFormat(cellW-2, b.Height-9, cell, "", 0, "C", false, 0, "")
		}

	case BlockIconRow:
		w.drawIcon(b.Text, Margin+2, w.y+b.Height/2-9, 18)
		w.setText(f.Word, p.Primary, "")
		w.pdf.SetXY(Margin+26, w.y)
		w.pdf.CellFormat(ContentW*0.5, b.Height, b.Text, "", 0, "L", false, 0, "")
		w.pdf.SetDrawColor(hexRGB(p.Accent))
		w.pdf.SetLineWidth(0.3)
		w.pdf.Rect(PageWidth-Margin-34, w.y+3, 30, b.Height-6, "D")

	case BlockPairColumn:
		n := len(b.Cells) / 2
		rowH := (b.Height - 8) / float64(n)
		w.setText(f.Word, p.Primary, "")
		for i := 0; i < n; i++ {
			y := w.y + 4 + float64(i)*rowH
			w.pdf.SetXY(Margin+4, y)
			w.pdf.CellFormat(ContentW/2-8, rowH, b.Cells[2*i], "", 0, "L", false, 0, "")
			w.pdf.SetXY(PageWidth/2+10, y)
			w.pdf.CellFormat(ContentW/2-14, rowH, b.Cells[2*i+1], "", 0, "L", false, 0, "")
		}

	case BlockSection:
		w.setText(f.Body, p.Accent, "B")
		w.pdf.SetXY(Margin, w.y)
		w.pdf.CellFormat(ContentW, b.Height, strings.ToUpper(b.Text), "", 0, "L", false, 0, "")

	case BlockStoryText:
		w.setText(f.Body, "#333333", "")
		w.pdf.SetXY(Margin, w.y+2)
		w.pdf.MultiCell(ContentW, 8, b.Text, "", "L", false)

	case BlockMovement:
		w.pdf.SetFillColor(hexRGB(p.Soft))
		w.pdf.RoundedRect(Margin, w.y, ContentW, b.Height-3, 3, "1234", "F")
		w.setText(f.Body, p.Primary, "B")
		w.pdf.SetXY(Margin+6, w.y)
		w.pdf.CellFormat(ContentW-12, b.Height-3, b.Text, "", 0, "L", false, 0, "")

	case BlockCompletion:
		w.pdf.SetDrawColor(hexRGB(p.Primary))
		w.pdf.SetLineWidth(0.5)
		w.pdf.SetDashPattern([]float64{1.5, 1}, 0)
		w.pdf.RoundedRect(Margin, w.y, ContentW, b.Height-3, 3, "1234", "D")
		w.pdf.SetDashPattern([]float64{}, 0)
		w.setText(f.Body, p.Primary, "")
		w.pdf.SetXY(Margin, w.y)
		w.pdf.CellFormat(ContentW, b.Height-3, b.Text, "", 0, "C", false, 0, "")
	}

	w.y += b.Height
}

// drawIcon 把首字母圆盘作为内嵌 PNG 放进打印件
func (w *pdfWalker) drawIcon(word string, x, y, size float64) {
	png, err := LetterIconPNG(word, 128, w.plan.Palette)
	if err != nil {
		return
	}
	w.iconSeq++
	name := fmt.Sprintf("icon_%d_%s", w.iconSeq, word)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	w.pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
}

// spaced 描红词字间留空，便于逐字母描写
func spaced(word string) string {
	return strings.Join(strings.Split(word, ""), " ")
}

// hexRGB 把 #RRGGBB 展开为三个整型分量
func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 128, 128, 128
	}
	r, _ := strconv.ParseInt(hex[0:2], 16, 32)
	g, _ := strconv.ParseInt(hex[2:4], 16, 32)
	b, _ := strconv.ParseInt(hex[4:6], 16, 32)
	return int(r), int(g), int(b)
}
