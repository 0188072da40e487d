package model

import "strings"

// Table 内存中的表格数据：列头 + 按原始顺序排列的数据行
// 无表头的表（供应商SKU表）Headers 为空，数据从第一行开始
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Cell 安全读取单元格，越界返回空串
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// RowCell 安全读取某一行的单元格
func RowCell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// FindHeader 精确匹配列头，返回第一个命中的列索引
func (t *Table) FindHeader(names ...string) (int, bool) {
	for _, name := range names {
		for i, h := range t.Headers {
			if strings.TrimSpace(h) == name {
				return i, true
			}
		}
	}
	return 0, false
}

// AssetFile 附件文件（条码/图片），切片顺序即上传顺序
type AssetFile struct {
	Name string
	Data []byte
}
