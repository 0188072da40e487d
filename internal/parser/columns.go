package parser

import (
	"fmt"
	"strings"

	"shipgen/internal/model"
)

// 货品ID表各字段可接受的列头别名（大小写不敏感的包含匹配）
var productColumnAliases = map[string][]string{
	"productID": {"货品id", "货品Id", "货品ID"},
	"sku":       {"货品编码", "sku", "SKU"},
	"unitQty":   {"单套个数", "单套数量"},
	"details":   {"商品详情备注", "商品详情", "详情备注"},
}

// ProductColumns 货品ID表的列角色解析结果
// 每张表只解析一次，后续按索引直接取值
type ProductColumns struct {
	ID         int
	SKU        int
	UnitQty    int
	Details    int
	HasSKU     bool
	HasUnitQty bool
	HasDetails bool
}

// IdentifyProductColumns 识别货品ID表中的关键列
// 逐列扫描，每个角色第一个命中的列生效；
// 找不到 id 列时默认第 1 列，找不到详情列且表宽 >=3 时默认第 2 列
func IdentifyProductColumns(t *model.Table) ProductColumns {
	cols := ProductColumns{ID: -1, SKU: -1, UnitQty: -1, Details: -1}

	assigned := make(map[string]bool)
	for idx, name := range t.Headers {
		colLower := strings.ToLower(strings.TrimSpace(name))
		if colLower == "" {
			continue
		}
		for role, aliases := range productColumnAliases {
			if assigned[role] {
				continue
			}
			for _, alias := range aliases {
				if strings.Contains(colLower, strings.ToLower(alias)) {
					assigned[role] = true
					switch role {
					case "productID":
						cols.ID = idx
					case "sku":
						cols.SKU = idx
						cols.HasSKU = true
					case "unitQty":
						cols.UnitQty = idx
						cols.HasUnitQty = true
					case "details":
						cols.Details = idx
						cols.HasDetails = true
					}
					break
				}
			}
		}
	}

	if cols.ID < 0 {
		cols.ID = 1
	}
	if !cols.HasDetails && len(t.Headers) > 2 {
		cols.Details = 2
		cols.HasDetails = true
	}
	return cols
}

// OrderColumns 订单表的列角色解析结果（精确列头匹配）
type OrderColumns struct {
	ProductID    int
	SKU          int
	Sets         int
	Address      int
	Warehouse    int
	HasProductID bool
	HasSKU       bool
	HasSets      bool
	HasAddress   bool
	HasWarehouse bool
}

// IdentifyOrderColumns 识别订单表中的关键列，列头为精确匹配
func IdentifyOrderColumns(t *model.Table) OrderColumns {
	var cols OrderColumns
	cols.ProductID, cols.HasProductID = t.FindHeader("货品Id", "货品id", "货品ID")
	cols.SKU, cols.HasSKU = t.FindHeader("货品编码", "SKU", "sku")
	cols.Sets, cols.HasSets = t.FindHeader("发货数量", "套数")
	cols.Address, cols.HasAddress = t.FindHeader("仓库地址")
	cols.Warehouse, cols.HasWarehouse = t.FindHeader("仓库名称")
	return cols
}

// storeColumnAliases 店铺列可接受的列头
var storeColumnAliases = []string{"店铺名称", "店铺", "店铺名", "店名"}

// FindStoreColumn 定位订单表的店铺列
// 找不到时报错并列出实际存在的列，避免拿空键分组
func FindStoreColumn(t *model.Table) (int, error) {
	if idx, ok := t.FindHeader(storeColumnAliases...); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("未找到店铺列，可用列: %s", strings.Join(t.Headers, ", "))
}
