package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shipgen/internal/model"
	"shipgen/internal/packager"
	"shipgen/internal/pipeline"
	"shipgen/internal/refdata"
	"shipgen/internal/xlsx"
)

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/progress/done/error
	Message   string      `json:"message"`   // 事件消息
	Progress  float64     `json:"progress"`  // 0-1 完成比例
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Generate 上传表格并生成出货单 (SSE 流式响应)
// POST /api/generate
// 表单字段：main / sku_id / supplier / sku_name 四个必需工作簿，
// barcodes / images 可选附件（多文件）
func (h *Handler) Generate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	required := map[string][]byte{}
	for _, field := range []string{"main", "sku_id", "supplier", "sku_name"} {
		files := form.File[field]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("缺少必需文件: %s", field)})
			return
		}
		data, err := readUpload(files[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("读取 %s 失败", field)})
			return
		}
		required[field] = data
	}
	orderFilename := form.File["main"][0].Filename

	barcodes, err := readAssets(form.File["barcodes"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取条码文件失败"})
		return
	}
	images, err := readAssets(form.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取图片文件失败"})
		return
	}

	orderTable, err := xlsx.ReadTable(required["main"], true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("解析订单表失败: %v", err)})
		return
	}
	productTable, err := xlsx.ReadTable(required["sku_id"], true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("解析货品ID表失败: %v", err)})
		return
	}
	// 供应商SKU表无表头，按位置解析
	supplierTable, err := xlsx.ReadTable(required["supplier"], false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("解析供应商表失败: %v", err)})
		return
	}
	nameTable, err := xlsx.ReadTable(required["sku_name"], true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("解析商品名称表失败: %v", err)})
		return
	}

	logID, err := h.store.CreateGenerateLog(orderFilename, len(barcodes), len(images))
	if err != nil {
		log.Printf("创建生成日志失败: %v", err)
	}

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}
	emit := func(ev ProgressEvent) {
		ev.Timestamp = time.Now()
		data, err := json.Marshal(ev)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}

	emit(ProgressEvent{Type: "start", Message: "开始生成出货单", Data: gin.H{
		"orderRows": len(orderTable.Rows),
		"barcodes":  len(barcodes),
		"images":    len(images),
	}})

	idx := refdata.NewIndex(productTable, supplierTable, nameTable, barcodes, images)
	coordinator := pipeline.NewCoordinator(idx)

	results, err := coordinator.Run(orderTable, func(fraction float64, message string) {
		emit(ProgressEvent{Type: "progress", Message: message, Progress: fraction})
	})
	if err != nil {
		h.finishLog(logID, nil, "failed", err.Error())
		emit(ProgressEvent{Type: "error", Message: err.Error()})
		return
	}

	zipData, zipName, err := packager.BuildZip(results, time.Now())
	if err != nil {
		h.finishLog(logID, results, "failed", err.Error())
		emit(ProgressEvent{Type: "error", Message: fmt.Sprintf("打包失败: %v", err)})
		return
	}

	token := h.downloads.put(zipName, zipData, h.downloadTTL)
	h.finishLog(logID, results, "completed", "")

	emit(ProgressEvent{Type: "done", Message: "生成完成", Progress: 1, Data: gin.H{
		"token":    token,
		"filename": zipName,
		"stores":   len(results),
	}})
}

// finishLog 回写生成日志，失败只记日志不影响响应
func (h *Handler) finishLog(logID int64, results []model.StoreResult, status, errMsg string) {
	if logID == 0 {
		return
	}
	documentCount := 0
	barcodeFileCount := 0
	for _, r := range results {
		documentCount += len(r.Documents)
		for _, d := range r.Documents {
			barcodeFileCount += len(d.Barcodes)
		}
	}
	if err := h.store.UpdateGenerateLog(logID, len(results), documentCount, barcodeFileCount, status, errMsg); err != nil {
		log.Printf("更新生成日志失败: %v", err)
	}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// readAssets 按上传顺序读入附件，顺序决定后续模糊匹配的扫描顺序
func readAssets(files []*multipart.FileHeader) ([]model.AssetFile, error) {
	assets := make([]model.AssetFile, 0, len(files))
	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		assets = append(assets, model.AssetFile{Name: fh.Filename, Data: data})
	}
	return assets, nil
}
