package packager

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"shipgen/internal/model"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"义乌供应商":                "义乌供应商",
		`a/b\c:d*e?f"g<h>i|j`:  "a_b_c_d_e_f_g_h_i_j",
		"旗舰店(天猫)":              "旗舰店(天猫)",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("打开压缩包失败: %v", err)
	}
	entries := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("打开 %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("读取 %s: %v", f.Name, err)
		}
		entries[f.Name] = b
	}
	return entries
}

func TestBuildZip_Layout(t *testing.T) {
	t.Parallel()

	results := []model.StoreResult{
		{
			Store: "旗舰/店",
			Documents: []model.Document{
				{
					Supplier: "义乌供应商",
					Excel:    []byte("excel-1"),
					Barcodes: []model.BarcodeFile{
						{Name: "3--1001.pdf", Data: []byte("pdf-1")},
						{Name: "2--2002.pdf", Data: []byte("pdf-2")},
					},
				},
				{
					Supplier:   "异常订单",
					IsAbnormal: true,
					Excel:      []byte("excel-2"),
				},
			},
		},
	}

	generatedAt := time.Date(2026, 3, 15, 9, 30, 5, 0, time.Local)
	data, filename, err := BuildZip(results, generatedAt)
	if err != nil {
		t.Fatalf("BuildZip: %v", err)
	}
	if filename != "出货单_20260315_093005.zip" {
		t.Errorf("filename = %q", filename)
	}

	entries := readZip(t, data)
	root := "出货单_20260315_093005"
	want := map[string]string{
		root + "/店铺_旗舰_店/供应商_义乌供应商/义乌供应商_出货单.xlsx": "excel-1",
		root + "/店铺_旗舰_店/供应商_义乌供应商/条码/3--1001.pdf":   "pdf-1",
		root + "/店铺_旗舰_店/供应商_义乌供应商/条码/2--2002.pdf":   "pdf-2",
		root + "/店铺_旗舰_店/异常订单/异常订单_出货单.xlsx":          "excel-2",
	}
	if len(entries) != len(want) {
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		t.Fatalf("entries = %d (%v), want %d", len(entries), names, len(want))
	}
	for name, content := range want {
		if string(entries[name]) != content {
			t.Errorf("entry %s = %q, want %q", name, entries[name], content)
		}
	}
}

func TestBuildZip_ReservedCharactersSanitizedEverywhere(t *testing.T) {
	t.Parallel()

	results := []model.StoreResult{
		{
			Store: "甲店",
			Documents: []model.Document{
				{
					Supplier: "义乌/供应商:A",
					Excel:    []byte("excel"),
					Barcodes: []model.BarcodeFile{
						{Name: `3--10?01.pdf`, Data: []byte("pdf")},
					},
				},
			},
		},
	}

	data, _, err := BuildZip(results, time.Date(2026, 3, 15, 9, 30, 5, 0, time.Local))
	if err != nil {
		t.Fatalf("BuildZip: %v", err)
	}

	entries := readZip(t, data)
	root := "出货单_20260315_093005"
	want := map[string]string{
		root + "/店铺_甲店/供应商_义乌_供应商_A/义乌_供应商_A_出货单.xlsx": "excel",
		root + "/店铺_甲店/供应商_义乌_供应商_A/条码/3--10_01.pdf":     "pdf",
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v, want %d", entries, len(want))
	}
	for name, content := range want {
		if string(entries[name]) != content {
			t.Errorf("entry %s = %q, want %q", name, entries[name], content)
		}
	}
	// 目录分隔符之外不得残留保留字符
	for name := range entries {
		rel := strings.TrimPrefix(name, root+"/")
		if strings.ContainsAny(rel, `\*?:"<>|`) {
			t.Errorf("entry %s contains reserved characters", name)
		}
	}
}

func TestBuildZip_EmptyResults(t *testing.T) {
	t.Parallel()

	data, filename, err := BuildZip(nil, time.Now())
	if err != nil {
		t.Fatalf("BuildZip: %v", err)
	}
	if filename == "" {
		t.Error("empty filename")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("空结果也应产出合法压缩包: %v", err)
	}
	if len(zr.File) != 0 {
		t.Errorf("entries = %d, want 0", len(zr.File))
	}
}
