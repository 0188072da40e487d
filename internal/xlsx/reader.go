package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"shipgen/internal/model"
)

// ReadTable 把 xlsx 文件内容读成内存表，取第一个工作表
// hasHeader 为 false 时（供应商SKU表）整表都算数据行
func ReadTable(data []byte, hasHeader bool) (*model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("打开工作簿失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("工作簿没有工作表")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheets[0], err)
	}

	t := &model.Table{}
	if hasHeader {
		if len(rows) > 0 {
			t.Headers = rows[0]
			t.Rows = rows[1:]
		}
		return t, nil
	}
	t.Rows = rows
	return t, nil
}
