package exporter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"shipgen/internal/model"
)

// AbnormalLabel 异常订单桶的展示名
const AbnormalLabel = "异常订单"

// 出货单固定版式，由文档装配器独占
var (
	chineseNumbers = []string{"一", "二", "三", "四", "五", "六", "七", "八", "九", "十",
		"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十"}
	columnWidths = []float64{12, 20, 10, 10, 15, 8, 10, 15, 12, 25, 20}
	headers      = []string{"单号", "SKU", "商品名称", "商品图片", "商品详情", "套数", "总数量",
		"货品id", "条码文件", "仓库地址", "仓库名称"}
)

const (
	rowHeight     = 60.0
	imageColWidth = 10.0
	imageColumn   = 4
	columnCount   = 11
	headerRow     = 3
	firstDataRow  = 4
	headerFill    = "C6E0B4"
)

// ordinalLabel 出货组的序号标签，前 20 组用汉字序数
func ordinalLabel(groupIdx int) string {
	if groupIdx < len(chineseNumbers) {
		return "第" + chineseNumbers[groupIdx] + "单"
	}
	return fmt.Sprintf("第%d单", groupIdx+1)
}

// sheetTitle 工作表名最长 31 个字符
func sheetTitle(label string) string {
	r := []rune(label)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

type docStyles struct {
	title  int
	header int
	data   [columnCount]int
}

func buildStyles(f *excelize.File) (docStyles, error) {
	var s docStyles
	var err error

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return s, err
	}

	type align struct {
		horizontal string
		wrap       bool
	}
	// 列序与 headers 对应：序号/SKU/名称/图片/详情/套数/总数/货品id/条码/地址/仓库
	aligns := [columnCount]align{
		{"center", false},
		{"left", true},
		{"center", true},
		{"center", false},
		{"center", true},
		{"center", false},
		{"center", false},
		{"center", false},
		{"center", false},
		{"justify", true},
		{"justify", true},
	}
	for i, a := range aligns {
		style := &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: a.horizontal, Vertical: "center", WrapText: a.wrap},
			Border:    thin,
		}
		if i == 7 {
			// 货品id 列：数值不带小数显示
			style.NumFmt = 1
		}
		s.data[i], err = f.NewStyle(style)
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

// Assemble 为一个供应商桶（或异常单桶）生成出货单工作簿
// groups 必须已按最小原始顺序排好；返回的文档含重命名后的条码文件清单
func Assemble(label string, groups []model.ShipmentGroup, isAbnormal bool) (model.Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetTitle(label)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return model.Document{}, fmt.Errorf("设置工作表名失败: %w", err)
	}

	styles, err := buildStyles(f)
	if err != nil {
		return model.Document{}, fmt.Errorf("创建样式失败: %w", err)
	}

	// 标题行
	if err := f.MergeCell(sheet, "A1", "K1"); err != nil {
		return model.Document{}, err
	}
	title := fmt.Sprintf("%s 出货单 - %s", label, time.Now().Format("2006-01-02"))
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return model.Document{}, err
	}
	if err := f.SetCellStyle(sheet, "A1", "K1", styles.title); err != nil {
		return model.Document{}, err
	}

	// 表头行
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return model.Document{}, err
		}
	}
	if err := f.SetCellStyle(sheet, "A3", "K3", styles.header); err != nil {
		return model.Document{}, err
	}

	barcodes, lastRow, err := writeShipmentBlocks(f, sheet, groups)
	if err != nil {
		return model.Document{}, err
	}

	// 插入图片（处理失败只影响单格，不中断文档）
	imgRow := firstDataRow
	for _, g := range groups {
		for _, order := range g.Orders {
			if len(order.ImageData) > 0 {
				insertImage(f, sheet, imgRow, imageColumn, order.ImageData, order.ImageExt)
			}
			imgRow++
		}
	}

	if err := applyLayout(f, sheet, styles, lastRow); err != nil {
		return model.Document{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return model.Document{}, fmt.Errorf("写出工作簿失败: %w", err)
	}
	return model.Document{
		Supplier:   label,
		IsAbnormal: isAbnormal,
		Excel:      buf.Bytes(),
		Barcodes:   barcodes,
	}, nil
}

// writeShipmentBlocks 逐仓写出货块：数据行、序号标签、纵向合并
// 返回条码文件清单和最后一个数据行号
func writeShipmentBlocks(f *excelize.File, sheet string, groups []model.ShipmentGroup) ([]model.BarcodeFile, int, error) {
	var barcodes []model.BarcodeFile
	currentRow := firstDataRow

	for groupIdx, g := range groups {
		startRow := currentRow
		for i, order := range g.Orders {
			if err := writeOrderRow(f, sheet, currentRow, order); err != nil {
				return nil, 0, err
			}

			if len(order.BarcodeData) > 0 && order.BarcodeFilename != "" {
				renamed := fmt.Sprintf("%d--%s", order.Sets, order.BarcodeFilename)
				if err := setCell(f, sheet, 9, currentRow, renamed); err != nil {
					return nil, 0, err
				}
				barcodes = append(barcodes, model.BarcodeFile{Name: renamed, Data: order.BarcodeData})
			} else {
				if err := setCell(f, sheet, 9, currentRow, "无条码"); err != nil {
					return nil, 0, err
				}
			}

			if i == 0 {
				if err := setCell(f, sheet, 10, currentRow, g.Address); err != nil {
					return nil, 0, err
				}
				if err := setCell(f, sheet, 11, currentRow, g.Warehouse); err != nil {
					return nil, 0, err
				}
			}
			currentRow++
		}
		endRow := currentRow - 1

		if err := setCell(f, sheet, 1, startRow, ordinalLabel(groupIdx)); err != nil {
			return nil, 0, err
		}
		if endRow > startRow {
			for _, col := range []int{1, 10, 11} {
				from, _ := excelize.CoordinatesToCellName(col, startRow)
				to, _ := excelize.CoordinatesToCellName(col, endRow)
				if err := f.MergeCell(sheet, from, to); err != nil {
					return nil, 0, err
				}
			}
		}
	}
	return barcodes, currentRow - 1, nil
}

func writeOrderRow(f *excelize.File, sheet string, row int, order model.OrderLine) error {
	if err := setCell(f, sheet, 2, row, order.SKU); err != nil {
		return err
	}
	if err := setCell(f, sheet, 3, row, order.ProductName); err != nil {
		return err
	}
	if err := setCell(f, sheet, 5, row, order.ProductDetails); err != nil {
		return err
	}
	if err := setCell(f, sheet, 6, row, order.Sets); err != nil {
		return err
	}
	if err := setCell(f, sheet, 7, row, order.TotalQuantity); err != nil {
		return err
	}
	// 货品id：数值时按数字写入，样式里 "0" 格式去掉小数
	if n, err := strconv.ParseFloat(order.ProductID, 64); err == nil {
		return setCell(f, sheet, 8, row, n)
	}
	return setCell(f, sheet, 8, row, order.ProductID)
}

// applyLayout 统一版式：列宽、行高、对齐和边框
func applyLayout(f *excelize.File, sheet string, styles docStyles, lastRow int) error {
	for i, width := range columnWidths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	for row := firstDataRow; row <= lastRow; row++ {
		if err := f.SetRowHeight(sheet, row, rowHeight); err != nil {
			return err
		}
		for col := 1; col <= columnCount; col++ {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			if err := f.SetCellStyle(sheet, cell, cell, styles.data[col-1]); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return f.SetCellValue(sheet, cell, v)
}
