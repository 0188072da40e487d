package exporter

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/xuri/excelize/v2"
)

// 单元格像素足迹：列宽 1 字符约 7px，行高 1 磅约 1.33px
const (
	imageCellWidthPx  = imageColWidth * 7
	imageCellHeightPx = rowHeight * 1.33
	imageFitRatio     = 0.85
	// 0.1cm 的内边距换算成像素
	imagePaddingPx = 0.1 / 2.54 * 96
)

// normalizeImage 把图片统一成白底 JPEG
// 透明/调色板图先铺到白色背景上；任何一步失败都退回原始字节
func normalizeImage(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, false
	}

	bounds := img.Bounds()
	flattened := image.NewRGBA(bounds)
	draw.Draw(flattened, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flattened, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattened, &jpeg.Options{Quality: 95}); err != nil {
		return data, false
	}
	return buf.Bytes(), true
}

// insertImage 把商品图片嵌入指定单元格，等比缩放到单元格的 85% 并居中
// 图片无法解析时放弃该格，不影响文档其余部分
func insertImage(f *excelize.File, sheet string, row, col int, data []byte, origExt string) {
	processed, ok := normalizeImage(data)
	ext := ".jpg"
	if !ok {
		processed = data
		ext = origExt
		if ext == "" {
			return
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(processed))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return
	}

	scale := imageCellWidthPx * imageFitRatio / float64(cfg.Width)
	if s := imageCellHeightPx * imageFitRatio / float64(cfg.Height); s < scale {
		scale = s
	}
	offsetX := int((imageCellWidthPx-float64(cfg.Width)*scale)/2 + 1 + imagePaddingPx)
	offsetY := int((imageCellHeightPx-float64(cfg.Height)*scale)/2 + 1 + imagePaddingPx)

	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
		Extension: ext,
		File:      processed,
		Format: &excelize.GraphicOptions{
			ScaleX:      scale,
			ScaleY:      scale,
			OffsetX:     offsetX,
			OffsetY:     offsetY,
			Positioning: "oneCell",
		},
	})
}
