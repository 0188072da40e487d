package pipeline

import (
	"strings"
	"testing"

	"shipgen/internal/exporter"
	"shipgen/internal/model"
	"shipgen/internal/parser"
	"shipgen/internal/refdata"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()

	products := &model.Table{
		Headers: []string{"货品编码", "货品id", "商品详情备注", "单套个数"},
		Rows: [][]string{
			{"ABC-6X", "1001", "红色礼盒装", "6"},
			{"DEF", "2002", "散装", "2"},
		},
	}
	suppliers := &model.Table{
		Rows: [][]string{
			{"义乌供应商", "ABC", "DEF"},
		},
	}
	names := &model.Table{
		Headers: []string{"货品编码", "商品名称"},
		Rows: [][]string{
			{"ABC", "保温杯"},
			{"DEF", "帆布袋"},
		},
	}
	return NewCoordinator(refdata.NewIndex(products, suppliers, names, nil, nil))
}

func orderTable(rows [][]string) *model.Table {
	return &model.Table{
		Headers: []string{"店铺名称", "货品编码", "货品id", "发货数量", "仓库地址", "仓库名称"},
		Rows:    rows,
	}
}

func TestRun_MissingStoreColumnFails(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t)
	_, err := c.Run(&model.Table{Headers: []string{"货品编码", "发货数量"}}, nil)
	if err == nil {
		t.Fatal("expected error for table without store column")
	}
	if !strings.Contains(err.Error(), "店铺") || !strings.Contains(err.Error(), "货品编码") {
		t.Errorf("error should name the missing column and list headers: %v", err)
	}
}

func TestRun_StoresSortedAndProgressReported(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t)
	orders := orderTable([][]string{
		{"乙店", "ABC-6X", "1001", "2", "义乌地址", "义乌仓"},
		{"甲店", "DEF", "2002", "1", "杭州地址", "杭州仓"},
		{"乙店", "DEF", "2002", "3", "义乌地址", "义乌仓"},
	})

	var fractions []float64
	var messages []string
	results, err := c.Run(orders, func(fraction float64, message string) {
		fractions = append(fractions, fraction)
		messages = append(messages, message)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != 2 || results[0].Store != "乙店" || results[1].Store != "甲店" {
		t.Fatalf("stores out of order: %v, %v", results[0].Store, results[1].Store)
	}
	if len(fractions) != 2 || fractions[0] != 0.5 || fractions[1] != 1.0 {
		t.Errorf("fractions = %v, want [0.5 1.0]", fractions)
	}
	if messages[0] != "处理店铺: 乙店" || messages[1] != "处理店铺: 甲店" {
		t.Errorf("messages = %v", messages)
	}
}

func TestRun_DocumentsPerSupplierPlusAbnormal(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t)
	orders := orderTable([][]string{
		{"甲店", "ABC-6X", "1001", "2", "义乌地址", "义乌仓"},
		{"甲店", "ZZZ-1", "9999", "1", "温州地址", "温州仓"},
		{"甲店", "DEF", "2002", "1", "义乌地址", "义乌仓"},
	})

	results, err := c.Run(orders, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}

	docs := results[0].Documents
	if len(docs) != 2 {
		t.Fatalf("documents = %d, want supplier doc + abnormal doc", len(docs))
	}
	if docs[0].Supplier != "义乌供应商" || docs[0].IsAbnormal {
		t.Errorf("first doc = %q abnormal=%v", docs[0].Supplier, docs[0].IsAbnormal)
	}
	if docs[1].Supplier != exporter.AbnormalLabel || !docs[1].IsAbnormal {
		t.Errorf("second doc = %q abnormal=%v", docs[1].Supplier, docs[1].IsAbnormal)
	}
	if len(docs[0].Excel) == 0 {
		t.Error("supplier document has no workbook bytes")
	}
}

func TestRun_BlankStoreRowsSkipped(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t)
	orders := orderTable([][]string{
		{"", "ABC-6X", "1001", "2", "义乌地址", "义乌仓"},
		{"甲店", "DEF", "2002", "1", "义乌地址", "义乌仓"},
		{"  ", "DEF", "2002", "3", "义乌地址", "义乌仓"},
	})

	results, err := c.Run(orders, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Store != "甲店" {
		t.Fatalf("results = %+v, want only 甲店", results)
	}
}

func TestRun_MergesSameWarehouseSameProduct(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t)
	orders := orderTable([][]string{
		{"甲店", "ABC-6X", "1001", "2", "义乌地址", "义乌仓"},
		{"甲店", "ABC-6X", "1001", "3", "义乌地址", "义乌仓"},
	})

	cols := parser.IdentifyOrderColumns(orders)
	got := Merge([]model.OrderLine{
		ResolveLine(c.idx, cols, orders.Rows[0], 0),
		ResolveLine(c.idx, cols, orders.Rows[1], 1),
	})
	if len(got) != 1 {
		t.Fatalf("merged = %d lines, want 1", len(got))
	}
	if got[0].Sets != 5 || got[0].TotalQuantity != 30 {
		t.Errorf("merged sets/total = %d/%d, want 5/30", got[0].Sets, got[0].TotalQuantity)
	}
}
