package refdata

import (
	"path/filepath"
	"strings"

	"shipgen/internal/model"
	"shipgen/internal/parser"
)

// DefaultSupplier 未能归组的 SKU 所属的兜底供应商
const DefaultSupplier = "其他供应商"

// supplierHeaderTokens 供应商行的识别关键词（配合 CJK 字符判断）
var supplierHeaderTokens = []string{"供应商", "厂"}

type imageAsset struct {
	data []byte
	ext  string
}

// Index 参考数据索引
// 由 NewIndex 一次性构建，构建完成后只读；
// 模糊匹配按插入顺序扫描，所以 map 之外都带有序键表
type Index struct {
	productCols parser.ProductColumns
	products    map[string][]string

	suppliers     map[string]string
	supplierOrder []string

	names *model.Table

	images     map[string]imageAsset
	imageOrder []string

	barcodes []model.AssetFile
}

// NewIndex 构建参考数据索引
// products: 货品ID表；suppliers: 供应商SKU表（无表头）；names: 商品名称表
// barcodes/images: 附件文件，切片顺序即匹配时的扫描顺序
func NewIndex(products, suppliers, names *model.Table, barcodes, images []model.AssetFile) *Index {
	idx := &Index{
		productCols: parser.IdentifyProductColumns(products),
		products:    make(map[string][]string),
		suppliers:   make(map[string]string),
		images:      make(map[string]imageAsset),
		names:       names,
		barcodes:    barcodes,
	}

	idx.buildProductIndex(products)
	idx.buildSupplierIndex(suppliers)
	idx.buildImageIndex(images)
	return idx
}

// buildProductIndex 建立货品ID索引
// 每行同时登记原始字符串和数值归一串（"123.0" 与 "123" 指向同一行）
func (idx *Index) buildProductIndex(t *model.Table) {
	col := idx.productCols.ID
	for _, row := range t.Rows {
		id := parser.SafeString(model.RowCell(row, col))
		if id == "" {
			continue
		}
		if normalized, ok := parser.NormalizeNumericID(id); ok {
			idx.products[normalized] = row
		}
		idx.products[id] = row
	}
}

// buildSupplierIndex 建立供应商SKU索引
// 逐行逐格扫描：含中文或“供应商”“厂”的单元格是供应商名，
// 其后的非空单元格都归属该供应商，直到出现下一个供应商名
func (idx *Index) buildSupplierIndex(t *model.Table) {
	current := DefaultSupplier
	for _, row := range t.Rows {
		for _, cell := range row {
			s := parser.SafeString(cell)
			if s == "" {
				continue
			}
			if parser.ContainsCJK(s) || parser.ContainsAny(s, supplierHeaderTokens) {
				current = s
				continue
			}
			if _, seen := idx.suppliers[s]; !seen {
				idx.supplierOrder = append(idx.supplierOrder, s)
			}
			idx.suppliers[s] = current
		}
	}
}

// buildImageIndex 建立图片索引，键为去扩展名并转小写的文件名
func (idx *Index) buildImageIndex(files []model.AssetFile) {
	for _, f := range files {
		ext := filepath.Ext(f.Name)
		stem := strings.ToLower(strings.TrimSuffix(f.Name, ext))
		if _, seen := idx.images[stem]; !seen {
			idx.imageOrder = append(idx.imageOrder, stem)
		}
		idx.images[stem] = imageAsset{data: f.Data, ext: strings.ToLower(ext)}
	}
}
