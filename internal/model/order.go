package model

// OrderLine 一条已解析的订单记录
// Seq 记录该行在原始订单表中的顺序，后续合并/分组都要以它保持输出顺序稳定
type OrderLine struct {
	SKU             string `json:"sku"`
	SKUPrefix       string `json:"skuPrefix"`
	ProductName     string `json:"productName"`
	ProductDetails  string `json:"productDetails"`
	Sets            int    `json:"sets"`
	TotalQuantity   int    `json:"totalQuantity"`
	ProductID       string `json:"productId"`
	Warehouse       string `json:"warehouse"`
	Address         string `json:"address"`
	Supplier        string `json:"supplier"`
	SupplierFound   bool   `json:"supplierFound"`
	Seq             int    `json:"seq"`
	ImageData       []byte `json:"-"`
	ImageExt        string `json:"-"`
	BarcodeData     []byte `json:"-"`
	BarcodeFilename string `json:"barcodeFilename"`
}

// ShipmentGroup 同一仓库的订单块
// MinSeq 是组内成员的最小原始顺序，决定组的排列和序号标签
type ShipmentGroup struct {
	Warehouse string
	Address   string
	Orders    []OrderLine
	MinSeq    int
}

// BarcodeFile 重命名后的条码文件
type BarcodeFile struct {
	Name string
	Data []byte
}

// Document 一份生成好的出货单：内存中的 xlsx 数据 + 随单条码文件
type Document struct {
	Supplier   string
	IsAbnormal bool
	Excel      []byte
	Barcodes   []BarcodeFile
}

// StoreResult 单个店铺的全部产出
type StoreResult struct {
	Store     string
	Documents []Document
}
