package render

import (
	"bytes"
	"image/color"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

var (
	iconFontOnce sync.Once
	iconFont     *truetype.Font
)

// SetIconFont 指定图标字母使用的 TTF 字体，服务启动时调用一次
var iconFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

func SetIconFont(path string) {
	if path != "" {
		iconFontPath = path
	}
}

func loadIconFont() *truetype.Font {
	iconFontOnce.Do(func() {
		data, err := os.ReadFile(iconFontPath)
		if err != nil {
			return
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return
		}
		iconFont = f
	})
	return iconFont
}

// LetterIconPNG 生成词条的占位图标：底衬色圆盘加主色首字母。
// 词库图标缺失时两端都退回这个占位，保证打印件不留空框。
func LetterIconPNG(word string, size int, palette Palette) ([]byte, error) {
	dc := gg.NewContext(size, size)

	dc.SetColor(parseHex(palette.Soft))
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Fill()

	dc.SetColor(parseHex(palette.Primary))
	dc.SetLineWidth(float64(size) / 24)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2-float64(size)/24)
	dc.Stroke()

	letter := "?"
	if word != "" {
		letter = strings.ToUpper(word[:1])
	}

	if f := loadIconFont(); f != nil {
		face := truetype.NewFace(f, &truetype.Options{
			Size:    float64(size) * 0.5,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		dc.DrawStringAnchored(letter, float64(size)/2, float64(size)/2, 0.5, 0.5)
	} else {
		// 字体不可用时画一个实心圆点代替字母
		dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/6)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseHex 解析 #RRGGBB，非法输入退回灰色
func parseHex(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.Gray{Y: 128}
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.Gray{Y: 128}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
