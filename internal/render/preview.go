package render

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// 预览端把毫米坐标放大为像素，比例固定
const pxPerMM = 4.0

func px(mm float64) int {
	return int(mm * pxPerMM)
}

// fontPx 磅值换算为预览像素（1pt = 0.3528mm）
func fontPx(pt float64) int {
	return int(pt * 0.3528 * pxPerMM)
}

// RenderSVGPreview 屏幕预览：单张连续画布，换页处画分隔虚线。
// 渲染顺序严格跟随布局计划，与打印端逐块对应。
func RenderSVGPreview(plan *Plan) []byte {
	total := Margin
	for _, b := range plan.Blocks {
		if b.Kind == BlockPageBreak {
			total += 14
			continue
		}
		total += b.Height
	}
	total += Margin

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(PageWidth), px(total))
	canvas.Rect(0, 0, px(PageWidth), px(total), "fill:#FFFFFF")

	r := &svgWalker{canvas: canvas, plan: plan, y: Margin}
	for _, b := range plan.Blocks {
		r.block(b)
	}

	canvas.Text(px(PageWidth-Margin), px(total-4), plan.Footer,
		fmt.Sprintf("text-anchor:end;font-size:%dpx;fill:%s;font-family:sans-serif", fontPx(8), plan.Palette.Accent))
	canvas.End()
	return buf.Bytes()
}

type svgWalker struct {
	canvas *svg.SVG
	plan   *Plan
	y      float64
}

func (r *svgWalker) textStyle(pt float64, fill string, extra string) string {
	s := fmt.Sprintf("font-size:%dpx;fill:%s;font-family:sans-serif", fontPx(pt), fill)
	if extra != "" {
		s += ";" + extra
	}
	return s
}

func (r *svgWalker) block(b Block) {
	p := r.plan.Palette
	f := r.plan.Fonts

	switch b.Kind {
	case BlockTitle:
		r.canvas.Text(px(PageWidth/2), px(r.y+b.Height*0.7), b.Text,
			r.textStyle(f.Title, p.Primary, "text-anchor:middle;font-weight:bold"))

	case BlockHeading:
		r.canvas.Text(px(Margin), px(r.y+b.Height*0.75), b.Text,
			r.textStyle(f.Heading, p.Primary, "font-weight:bold"))

	case BlockBreathing:
		r.canvas.Roundrect(px(Margin), px(r.y), px(ContentW), px(b.Height-4), 8, 8, "fill:"+p.Soft)
		r.canvas.Circle(px(Margin+14), px(r.y+(b.Height-4)/2), px(7),
			"fill:none;stroke:"+p.Primary+";stroke-width:2")
		r.canvas.Text(px(Margin+28), px(r.y+b.Height*0.55), b.Text,
			r.textStyle(f.Body, p.Primary, ""))

	case BlockWordTrace:
		r.canvas.Text(px(Margin+4), px(r.y+b.Height*0.55), b.Text,
			r.textStyle(f.Word, p.Accent, "letter-spacing:6px"))
		r.canvas.Line(px(Margin+2), px(r.y+b.Height-5), px(PageWidth-Margin-2), px(r.y+b.Height-5),
			"stroke:"+p.Accent+";stroke-width:1;stroke-dasharray:6,4")

	case BlockWordLine:
		r.canvas.Circle(px(Margin+4), px(r.y+b.Height*0.45), px(2), "fill:"+p.Primary)
		r.canvas.Text(px(Margin+12), px(r.y+b.Height*0.6), b.Text,
			r.textStyle(f.Word, p.Primary, ""))
		if len(b.Chunks) > 0 {
			r.canvas.Text(px(PageWidth-Margin), px(r.y+b.Height*0.6), strings.Join(b.Chunks, " - "),
				r.textStyle(f.Body, p.Accent, "text-anchor:end"))
		}

	case BlockLetterRow:
		r.canvas.Text(px(Margin), px(r.y+5), fmt.Sprintf("Find every %s", b.Text),
			r.textStyle(f.Body, p.Primary, ""))
		cellW := ContentW / float64(len(b.Cells))
		for i, cell := range b.Cells {
			x := Margin + float64(i)*cellW
			r.canvas.Roundrect(px(x+1), px(r.y+7), px(cellW-2), px(b.Height-9), 6, 6,
				"fill:"+p.Soft+";stroke:"+p.Accent+";stroke-width:1")
			r.canvas.Text(px(x+cellW/2), px(r.y+7+(b.Height-9)*0.68), cell,
				r.textStyle(f.Word, p.Primary, "text-anchor:middle"))
		}

	case BlockIconRow:
		initial := "?"
		if b.Text != "" {
			initial = strings.ToUpper(b.Text[:1])
		}
		r.canvas.Circle(px(Margin+11), px(r.y+b.Height/2), px(9), "fill:"+p.Soft+";stroke:"+p.Primary+";stroke-width:2")
		r.canvas.Text(px(Margin+11), px(r.y+b.Height/2+3), initial,
			r.textStyle(f.Heading, p.Primary, "text-anchor:middle;font-weight:bold"))
		r.canvas.Text(px(Margin+28), px(r.y+b.Height*0.6), b.Text,
			r.textStyle(f.Word, p.Primary, ""))
		r.canvas.Rect(px(PageWidth-Margin-34), px(r.y+3), px(30), px(b.Height-6),
			"fill:none;stroke:"+p.Accent+";stroke-width:1")

	case BlockPairColumn:
		n := len(b.Cells) / 2
		rowH := (b.Height - 8) / float64(n)
		for i := 0; i < n; i++ {
			y := r.y + 4 + float64(i)*rowH + rowH*0.6
			r.canvas.Text(px(Margin+4), px(y), b.Cells[2*i],
				r.textStyle(f.Word, p.Primary, ""))
			r.canvas.Text(px(PageWidth/2+10), px(y), b.Cells[2*i+1],
				r.textStyle(f.Word, p.Primary, ""))
		}

	case BlockSection:
		r.canvas.Text(px(Margin), px(r.y+b.Height*0.7), b.Text,
			r.textStyle(f.Body, p.Accent, "font-weight:bold;text-transform:uppercase"))

	case BlockStoryText:
		lines := wrapText(b.Text, 55)
		for i, line := range lines {
			r.canvas.Text(px(Margin), px(r.y+4+float64(i+1)*8), line,
				r.textStyle(f.Body, "#333333", ""))
		}

	case BlockMovement:
		r.canvas.Roundrect(px(Margin), px(r.y), px(ContentW), px(b.Height-3), 8, 8, "fill:"+p.Soft)
		r.canvas.Text(px(Margin+6), px(r.y+b.Height*0.6), b.Text,
			r.textStyle(f.Body, p.Primary, "font-weight:bold"))

	case BlockCompletion:
		r.canvas.Roundrect(px(Margin), px(r.y), px(ContentW), px(b.Height-3), 10, 10,
			"fill:none;stroke:"+p.Primary+";stroke-width:2;stroke-dasharray:4,3")
		r.canvas.Text(px(PageWidth/2), px(r.y+b.Height*0.58), b.Text,
			r.textStyle(f.Body, p.Primary, "text-anchor:middle"))

	case BlockPageBreak:
		r.canvas.Line(px(Margin), px(r.y+7), px(PageWidth-Margin), px(r.y+7),
			"stroke:#CCCCCC;stroke-width:1;stroke-dasharray:10,6")
		r.y += 14
		return
	}

	r.y += b.Height
}

// wrapText 按近似字符宽折行，在空格处断开
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
		} else if len(cur)+1+len(w) <= width {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
