package store

import (
	"fmt"
	"time"
)

// GenerateLog 一次生成运行的记录
type GenerateLog struct {
	ID               int64      `json:"id"`
	OrderFilename    string     `json:"orderFilename"`
	BarcodeCount     int        `json:"barcodeCount"`
	ImageCount       int        `json:"imageCount"`
	StoreCount       int        `json:"storeCount"`
	DocumentCount    int        `json:"documentCount"`
	BarcodeFileCount int        `json:"barcodeFileCount"`
	Status           string     `json:"status"`
	ErrorMessage     string     `json:"errorMessage"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// CreateGenerateLog 创建生成日志，返回 generate_log_id
func (s *Store) CreateGenerateLog(orderFilename string, barcodeCount, imageCount int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO generate_logs (order_filename, barcode_count, image_count, status)
		VALUES (?, ?, ?, 'processing')
	`, orderFilename, barcodeCount, imageCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create generate log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get generate log id: %w", err)
	}
	return id, nil
}

// UpdateGenerateLog 完成生成日志更新
func (s *Store) UpdateGenerateLog(id int64, storeCount, documentCount, barcodeFileCount int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE generate_logs SET
			store_count = ?,
			document_count = ?,
			barcode_file_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, storeCount, documentCount, barcodeFileCount, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update generate log: %w", err)
	}
	return nil
}

// ListGenerateLogs 按时间倒序列出最近的生成运行
func (s *Store) ListGenerateLogs(limit int) ([]GenerateLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, order_filename, barcode_count, image_count,
		       store_count, document_count, barcode_file_count,
		       status, error_message, created_at, completed_at
		FROM generate_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generate logs: %w", err)
	}
	defer rows.Close()

	logs := make([]GenerateLog, 0)
	for rows.Next() {
		var l GenerateLog
		if err := rows.Scan(&l.ID, &l.OrderFilename, &l.BarcodeCount, &l.ImageCount,
			&l.StoreCount, &l.DocumentCount, &l.BarcodeFileCount,
			&l.Status, &l.ErrorMessage, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generate log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
