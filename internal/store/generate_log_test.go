package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "shipgen.db"))
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGenerateLog_CreateUpdateList(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateGenerateLog("订单表.xlsx", 5, 3)
	if err != nil {
		t.Fatalf("CreateGenerateLog: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d", id)
	}

	logs, err := s.ListGenerateLogs(10)
	if err != nil {
		t.Fatalf("ListGenerateLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	l := logs[0]
	if l.OrderFilename != "订单表.xlsx" || l.BarcodeCount != 5 || l.ImageCount != 3 {
		t.Errorf("created log = %+v", l)
	}
	if l.Status != "processing" {
		t.Errorf("status = %q, want processing", l.Status)
	}
	if l.CompletedAt != nil {
		t.Error("completed_at should be unset before update")
	}

	if err := s.UpdateGenerateLog(id, 2, 4, 6, "completed", ""); err != nil {
		t.Fatalf("UpdateGenerateLog: %v", err)
	}
	logs, err = s.ListGenerateLogs(10)
	if err != nil {
		t.Fatalf("ListGenerateLogs: %v", err)
	}
	l = logs[0]
	if l.StoreCount != 2 || l.DocumentCount != 4 || l.BarcodeFileCount != 6 {
		t.Errorf("updated counts = %d/%d/%d", l.StoreCount, l.DocumentCount, l.BarcodeFileCount)
	}
	if l.Status != "completed" || l.CompletedAt == nil {
		t.Errorf("status = %q completed_at = %v", l.Status, l.CompletedAt)
	}
}

func TestGenerateLog_FailedRunKeepsErrorMessage(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateGenerateLog("bad.xlsx", 0, 0)
	if err != nil {
		t.Fatalf("CreateGenerateLog: %v", err)
	}
	if err := s.UpdateGenerateLog(id, 0, 0, 0, "failed", "未找到店铺列"); err != nil {
		t.Fatalf("UpdateGenerateLog: %v", err)
	}

	logs, err := s.ListGenerateLogs(1)
	if err != nil {
		t.Fatalf("ListGenerateLogs: %v", err)
	}
	if logs[0].Status != "failed" || logs[0].ErrorMessage != "未找到店铺列" {
		t.Errorf("log = %+v", logs[0])
	}
}

func TestGenerateLog_ListHonorsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.CreateGenerateLog("订单表.xlsx", i, i); err != nil {
			t.Fatalf("CreateGenerateLog: %v", err)
		}
	}
	logs, err := s.ListGenerateLogs(3)
	if err != nil {
		t.Fatalf("ListGenerateLogs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("logs = %d, want 3", len(logs))
	}
	// 同秒写入，按 id 倒序保证最近的在前
	if logs[0].BarcodeCount != 4 {
		t.Errorf("first log barcode_count = %d, want 4", logs[0].BarcodeCount)
	}
}
