package pipeline

import (
	"sort"

	"shipgen/internal/model"
	"shipgen/internal/parser"
	"shipgen/internal/refdata"
)

// ResolveLine 把订单表的一行解析成完整的 OrderLine
// seq 是该行在原始订单表中的位置，贯穿后续所有变换
func ResolveLine(idx *refdata.Index, cols parser.OrderColumns, row []string, seq int) model.OrderLine {
	var productID, sku, sets, address, warehouse string
	if cols.HasProductID {
		productID = model.RowCell(row, cols.ProductID)
	}
	if cols.HasSKU {
		sku = model.RowCell(row, cols.SKU)
	}
	if cols.HasSets {
		sets = model.RowCell(row, cols.Sets)
	}
	if cols.HasAddress {
		address = model.RowCell(row, cols.Address)
	}
	if cols.HasWarehouse {
		warehouse = model.RowCell(row, cols.Warehouse)
	}

	prefix := refdata.ExtractSKUPrefix(sku)
	supplier, found := idx.SupplierGroup(prefix)
	imageData, imageExt := idx.FindImage(prefix)
	barcodeData, barcodeName := idx.FindBarcode(productID)

	return model.OrderLine{
		SKU:             parser.SafeString(sku),
		SKUPrefix:       prefix,
		ProductName:     idx.ProductName(prefix),
		ProductDetails:  idx.ProductDetails(productID),
		Sets:            parser.SafeInt(sets),
		TotalQuantity:   idx.TotalQuantity(sku, sets, productID),
		ProductID:       parser.SafeString(productID),
		Warehouse:       parser.SafeString(warehouse),
		Address:         parser.SafeString(address),
		Supplier:        supplier,
		SupplierFound:   found,
		Seq:             seq,
		ImageData:       imageData,
		ImageExt:        imageExt,
		BarcodeData:     barcodeData,
		BarcodeFilename: barcodeName,
	}
}

// Classification 单个店铺的分类结果
// Suppliers 保持供应商首次出现的顺序
type Classification struct {
	Suppliers []string
	Buckets   map[string][]model.OrderLine
	Abnormal  []model.OrderLine
}

// Classify 按原始顺序把订单行分到供应商桶或异常单
func Classify(lines []model.OrderLine) Classification {
	c := Classification{Buckets: make(map[string][]model.OrderLine)}
	for _, line := range lines {
		if !line.SupplierFound {
			c.Abnormal = append(c.Abnormal, line)
			continue
		}
		if _, seen := c.Buckets[line.Supplier]; !seen {
			c.Suppliers = append(c.Suppliers, line.Supplier)
		}
		c.Buckets[line.Supplier] = append(c.Buckets[line.Supplier], line)
	}
	return c
}

// Merge 合并同仓库同货品ID的订单行
// 套数和总数量相加，其余字段取首次出现的那一行；结果按首次出现的原始顺序排列
func Merge(lines []model.OrderLine) []model.OrderLine {
	sorted := make([]model.OrderLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	type key struct{ warehouse, productID string }
	pos := make(map[key]int)
	merged := make([]model.OrderLine, 0, len(sorted))
	for _, line := range sorted {
		k := key{line.Warehouse, line.ProductID}
		if i, ok := pos[k]; ok {
			merged[i].Sets += line.Sets
			merged[i].TotalQuantity += line.TotalQuantity
			continue
		}
		pos[k] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// GroupByWarehouse 按仓库名分组
// 组的地址/名称取首次遇到的行；组按成员最小原始顺序排列，
// 即使同一仓库的行和其他仓库交错出现，也保持整体输入意图
func GroupByWarehouse(lines []model.OrderLine) []model.ShipmentGroup {
	pos := make(map[string]int)
	groups := make([]model.ShipmentGroup, 0)
	for _, line := range lines {
		i, ok := pos[line.Warehouse]
		if !ok {
			pos[line.Warehouse] = len(groups)
			groups = append(groups, model.ShipmentGroup{
				Warehouse: line.Warehouse,
				Address:   line.Address,
				MinSeq:    line.Seq,
			})
			i = len(groups) - 1
		}
		groups[i].Orders = append(groups[i].Orders, line)
		if line.Seq < groups[i].MinSeq {
			groups[i].MinSeq = line.Seq
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].MinSeq < groups[j].MinSeq })
	return groups
}
