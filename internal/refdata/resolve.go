package refdata

import (
	"strings"

	"shipgen/internal/model"
	"shipgen/internal/parser"
)

// ResolveByProductID 按货品ID查找参考行
// 先查原始字符串，再查数值归一形式
func (idx *Index) ResolveByProductID(productID string) ([]string, bool) {
	id := parser.SafeString(productID)
	if id == "" {
		return nil, false
	}
	if row, ok := idx.products[id]; ok {
		return row, true
	}
	if normalized, ok := parser.NormalizeNumericID(id); ok {
		row, found := idx.products[normalized]
		return row, found
	}
	return nil, false
}

// ExtractSKUPrefix 取 SKU 第一个连字符之前的部分，没有连字符时原样返回
func ExtractSKUPrefix(sku string) string {
	s := parser.SafeString(sku)
	if i := strings.Index(s, "-"); i >= 0 {
		return s[:i]
	}
	return s
}

// ProductName 按 SKU 前缀查商品名称
// 顺序扫描名称表，第一列包含前缀的第一行生效；无命中或名称为空时回退为前缀本身
func (idx *Index) ProductName(skuPrefix string) string {
	if skuPrefix == "" {
		return ""
	}
	for _, row := range idx.names.Rows {
		if len(row) < 2 {
			continue
		}
		key := parser.SafeString(model.RowCell(row, 0))
		if key == "" {
			continue
		}
		if strings.Contains(key, skuPrefix) {
			if name := parser.SafeString(model.RowCell(row, 1)); name != "" {
				return name
			}
			return skuPrefix
		}
	}
	return skuPrefix
}

// ProductDetails 取参考行的商品详情，详情列未识别或货品ID未命中时为空
func (idx *Index) ProductDetails(productID string) string {
	if !idx.productCols.HasDetails {
		return ""
	}
	row, ok := idx.ResolveByProductID(productID)
	if !ok {
		return ""
	}
	return parser.SafeString(model.RowCell(row, idx.productCols.Details))
}

// SupplierGroup 按 SKU 前缀解析供应商
// 先精确命中；再按登记顺序做双向包含的模糊匹配；都不中归入兜底供应商
func (idx *Index) SupplierGroup(skuPrefix string) (string, bool) {
	if skuPrefix == "" {
		return DefaultSupplier, false
	}
	if supplier, ok := idx.suppliers[skuPrefix]; ok {
		return supplier, true
	}
	for _, key := range idx.supplierOrder {
		if strings.Contains(key, skuPrefix) || strings.Contains(skuPrefix, key) {
			return idx.suppliers[key], true
		}
	}
	return DefaultSupplier, false
}

// FindImage 按 SKU 前缀查商品图片
// 小写精确命中优先，其次按登记顺序做双向包含匹配；返回数据和原扩展名
func (idx *Index) FindImage(skuPrefix string) ([]byte, string) {
	if skuPrefix == "" {
		return nil, ""
	}
	lower := strings.ToLower(skuPrefix)
	if a, ok := idx.images[lower]; ok {
		return a.data, a.ext
	}
	for _, stem := range idx.imageOrder {
		if strings.Contains(lower, stem) || strings.Contains(stem, lower) {
			a := idx.images[stem]
			return a.data, a.ext
		}
	}
	return nil, ""
}

// FindBarcode 按货品ID查条码文件
// 顺序扫描，文件名包含货品ID字符串的第一个命中生效
func (idx *Index) FindBarcode(productID string) ([]byte, string) {
	id := parser.SafeString(productID)
	if id == "" {
		return nil, ""
	}
	for _, f := range idx.barcodes {
		if strings.Contains(f.Name, id) {
			return f.Data, f.Name
		}
	}
	return nil, ""
}
