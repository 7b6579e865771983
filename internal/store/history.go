package store

import (
	"fmt"
	"time"
)

// 下载记录状态
const (
	StatusOK            = "ok"
	StatusResolveFailed = "resolve_failed"
	StatusFetchFailed   = "fetch_failed"
)

// Run 一次批量运行
type Run struct {
	ID         string     `json:"id"`
	InputFile  string     `json:"inputFile"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
}

// Download 单条下载记录
type Download struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"runId"`
	Name       string    `json:"name"`
	Identifier string    `json:"identifier"`
	Filename   string    `json:"filename"`
	Quality    int       `json:"quality"`
	Status     string    `json:"status"`
	Error      string    `json:"error"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeginRun 记录运行开始
func (s *Store) BeginRun(runID, inputFile string, total int) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, input_file, started_at, total) VALUES (?, ?, ?, ?)`,
		runID, inputFile, time.Now(), total,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun 记录运行结束和成败计数
func (s *Store) FinishRun(runID string, succeeded, failed int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, succeeded = ?, failed = ? WHERE id = ?`,
		time.Now(), succeeded, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RecordDownload 记录单条下载结果
func (s *Store) RecordDownload(d *Download) error {
	_, err := s.db.Exec(
		`INSERT INTO downloads (run_id, name, identifier, filename, quality, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Name, d.Identifier, d.Filename, d.Quality, d.Status, d.Error, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert download: %w", err)
	}
	return nil
}

// ListDownloads 按时间倒序返回最近的下载记录
func (s *Store) ListDownloads(limit int) ([]*Download, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, name, identifier, filename, quality, status, error, created_at
		 FROM downloads ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	result := make([]*Download, 0)
	for rows.Next() {
		d := &Download{}
		if err := rows.Scan(&d.ID, &d.RunID, &d.Name, &d.Identifier, &d.Filename,
			&d.Quality, &d.Status, &d.Error, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// CountRuns 运行总数
func (s *Store) CountRuns() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// CountDownloads 按状态统计下载记录数；status 为空统计全部
func (s *Store) CountDownloads(status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM downloads`).Scan(&count)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM downloads WHERE status = ?`, status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count downloads: %w", err)
	}
	return count, nil
}
