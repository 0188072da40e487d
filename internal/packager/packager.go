package packager

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"time"

	"shipgen/internal/model"
)

// unsafeNameRe 文件/目录名里需要替换掉的文件系统保留字符
var unsafeNameRe = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeName 把用户数据派生的名称里的保留字符替换成下划线
func SanitizeName(name string) string {
	return unsafeNameRe.ReplaceAllString(name, "_")
}

// BuildZip 把各店铺的出货单打包成 zip
// 目录结构：出货单_<时间戳>/店铺_<名>/供应商_<名>/<供应商>_出货单.xlsx
// 有条码的供应商目录下再套一层 条码/；异常订单走独立的 异常订单/ 目录
func BuildZip(results []model.StoreResult, generatedAt time.Time) ([]byte, string, error) {
	rootName := "出货单_" + generatedAt.Format("20060102_150405")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, store := range results {
		storeDir := fmt.Sprintf("%s/店铺_%s", rootName, SanitizeName(store.Store))
		for _, doc := range store.Documents {
			var docDir, excelName string
			if doc.IsAbnormal {
				docDir = storeDir + "/异常订单"
				excelName = "异常订单_出货单.xlsx"
			} else {
				docDir = fmt.Sprintf("%s/供应商_%s", storeDir, SanitizeName(doc.Supplier))
				excelName = SanitizeName(doc.Supplier) + "_出货单.xlsx"
			}

			if err := writeEntry(zw, docDir+"/"+excelName, doc.Excel); err != nil {
				return nil, "", err
			}
			// 条码文件名来自上传文件，同样要洗掉保留字符
			for _, bc := range doc.Barcodes {
				if err := writeEntry(zw, docDir+"/条码/"+SanitizeName(bc.Name), bc.Data); err != nil {
					return nil, "", err
				}
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("关闭压缩包失败: %w", err)
	}
	return buf.Bytes(), rootName + ".zip", nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("创建压缩项 %s 失败: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("写入压缩项 %s 失败: %w", name, err)
	}
	return nil
}
