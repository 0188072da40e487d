package pipeline

import (
	"fmt"
	"sort"

	"shipgen/internal/exporter"
	"shipgen/internal/model"
	"shipgen/internal/parser"
	"shipgen/internal/refdata"
)

// ProgressFunc 进度回调，fraction 为 0-1 的完成比例
// 每处理完一个店铺同步调用一次，不得阻塞
type ProgressFunc func(fraction float64, message string)

// Coordinator 出货单生成协调器
// 参考索引启动时构建一次，之后逐店铺串行处理
type Coordinator struct {
	idx *refdata.Index
}

// NewCoordinator 创建协调器
func NewCoordinator(idx *refdata.Index) *Coordinator {
	return &Coordinator{idx: idx}
}

// Run 处理整张订单表，返回按店铺组织的出货单
// 订单表必须有店铺列，否则整次运行失败
func (c *Coordinator) Run(orders *model.Table, progress ProgressFunc) ([]model.StoreResult, error) {
	storeCol, err := parser.FindStoreColumn(orders)
	if err != nil {
		return nil, err
	}
	cols := parser.IdentifyOrderColumns(orders)

	// 按店铺分桶，行内保留原始顺序（seq 即原始行号）
	// 店铺格为空的行没有归属，直接跳过
	storeRows := make(map[string][]model.OrderLine)
	for seq, row := range orders.Rows {
		store := parser.SafeString(model.RowCell(row, storeCol))
		if store == "" {
			continue
		}
		storeRows[store] = append(storeRows[store], ResolveLine(c.idx, cols, row, seq))
	}

	stores := make([]string, 0, len(storeRows))
	for store := range storeRows {
		stores = append(stores, store)
	}
	sort.Strings(stores)

	results := make([]model.StoreResult, 0, len(stores))
	for i, store := range stores {
		if progress != nil {
			progress(float64(i+1)/float64(len(stores)), "处理店铺: "+store)
		}

		result, err := c.processStore(store, storeRows[store])
		if err != nil {
			return nil, fmt.Errorf("处理店铺 %s 失败: %w", store, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// processStore 单店铺流程：分类 -> 合并 -> 分仓 -> 生成文档
func (c *Coordinator) processStore(store string, lines []model.OrderLine) (model.StoreResult, error) {
	result := model.StoreResult{Store: store}
	classified := Classify(lines)

	for _, supplier := range classified.Suppliers {
		orders := classified.Buckets[supplier]
		if len(orders) == 0 {
			continue
		}
		merged := Merge(orders)
		doc, err := exporter.Assemble(supplier, GroupByWarehouse(merged), false)
		if err != nil {
			return model.StoreResult{}, err
		}
		result.Documents = append(result.Documents, doc)
	}

	if len(classified.Abnormal) > 0 {
		merged := Merge(classified.Abnormal)
		doc, err := exporter.Assemble(exporter.AbnormalLabel, GroupByWarehouse(merged), true)
		if err != nil {
			return model.StoreResult{}, err
		}
		result.Documents = append(result.Documents, doc)
	}
	return result, nil
}
