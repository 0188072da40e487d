package refdata

import (
	"regexp"
	"strconv"

	"shipgen/internal/model"
	"shipgen/internal/parser"
)

// skuMultiplierRe SKU 末尾的倍数约定，如 "ABC-6X" / "ABC-6x"
var skuMultiplierRe = regexp.MustCompile(`-(\d+)[Xx]$`)

// multiplierFromSKU 提取 SKU 末尾的倍数，没有时返回 0
func multiplierFromSKU(sku string) int {
	m := skuMultiplierRe.FindStringSubmatch(sku)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// TotalQuantity 计算发货总数量，回退链从权威到兜底：
//  1. 套数无效或为 0 直接返回 0
//  2. 货品ID表有单套个数列且命中参考行、单套个数 > 0：套数 × 单套个数
//  3. SKU 为空时用参考行里的货品编码补上
//  4. SKU 末尾带 "-<数字>X" 倍数约定：套数 × 倍数
//  5. 原样返回套数
//
// 回退顺序不可调换：表内单套个数是显式装箱数，优先于文件名约定
func (idx *Index) TotalQuantity(sku, sets, productID string) int {
	setsInt := parser.SafeInt(sets)
	if setsInt <= 0 {
		return 0
	}

	id := parser.SafeString(productID)
	if id != "" && idx.productCols.HasUnitQty {
		if row, ok := idx.ResolveByProductID(id); ok {
			unitQty := parser.SafeInt(model.RowCell(row, idx.productCols.UnitQty))
			if unitQty > 0 {
				return setsInt * unitQty
			}
		}
	}

	skuStr := parser.SafeString(sku)
	if skuStr == "" && id != "" && idx.productCols.HasSKU {
		if row, ok := idx.ResolveByProductID(id); ok {
			skuStr = parser.SafeString(model.RowCell(row, idx.productCols.SKU))
		}
	}

	if skuStr != "" {
		if multiplier := multiplierFromSKU(skuStr); multiplier > 0 {
			return setsInt * multiplier
		}
	}

	return setsInt
}
