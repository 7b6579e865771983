package job

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"albicon/internal/catalog"
	"albicon/internal/fetch"
	"albicon/internal/request"
	"albicon/internal/resolver"
	"albicon/internal/store"
)

// Runner 批量下载执行器
// 严格串行: 按输入顺序逐条解析、抓取，失败行按原始顺序收集
type Runner struct {
	catalog   *catalog.Catalog
	client    *fetch.Client
	store     *store.Store // 可为 nil，此时不记录历史
	outputDir string
}

// NewRunner 创建执行器
func NewRunner(cat *catalog.Catalog, client *fetch.Client, st *store.Store, outputDir string) *Runner {
	return &Runner{
		catalog:   cat,
		client:    client,
		store:     st,
		outputDir: outputDir,
	}
}

// Result 一次运行的汇总
type Result struct {
	RunID       string
	Total       int
	Succeeded   int
	FailedLines []string // 失败请求的原始行，顺序与输入一致
}

// Run 顺序处理全部请求
// 单条失败不中断运行；解析失败与抓取失败同样保留原始行待重试
func (r *Runner) Run(inputFile string, requests []request.Request) Result {
	result := Result{
		RunID: uuid.New().String(),
		Total: len(requests),
	}

	if r.store != nil {
		if err := r.store.BeginRun(result.RunID, inputFile, len(requests)); err != nil {
			log.Printf("[警告] 写入运行记录失败: %v", err)
		}
	}

	for _, req := range requests {
		target, err := resolver.Resolve(req, r.catalog)
		if err != nil {
			if errors.Is(err, resolver.ErrUnknownItem) {
				fmt.Printf("[失败] 数据中不存在: '%s' — 保留待重试\n", req.Name)
			} else if errors.Is(err, resolver.ErrTierRequired) {
				fmt.Printf("[失败] '%s': 标识符无内嵌等级，须提供等级 — 保留待重试\n", req.Name)
			} else {
				fmt.Printf("[失败] '%s': %v — 保留待重试\n", req.Name, err)
			}
			result.FailedLines = append(result.FailedLines, req.Original)
			r.record(result.RunID, req, target, store.StatusResolveFailed, err)
			continue
		}

		destPath := filepath.Join(r.outputDir, target.Filename)
		if err := r.client.Download(target.Identifier, target.Quality, destPath); err != nil {
			fmt.Printf("[失败] %s (%s): %v — 保留待重试\n", req.Name, target.Identifier, err)
			result.FailedLines = append(result.FailedLines, req.Original)
			r.record(result.RunID, req, target, store.StatusFetchFailed, err)
			continue
		}

		fmt.Printf("[成功] %s → %s\n", req.Name, destPath)
		result.Succeeded++
		r.record(result.RunID, req, target, store.StatusOK, nil)
	}

	if r.store != nil {
		if err := r.store.FinishRun(result.RunID, result.Succeeded, len(result.FailedLines)); err != nil {
			log.Printf("[警告] 更新运行记录失败: %v", err)
		}
	}

	return result
}

// record 写入单条历史记录，失败仅告警，不影响运行
func (r *Runner) record(runID string, req request.Request, target resolver.Target, status string, cause error) {
	if r.store == nil {
		return
	}

	d := &store.Download{
		RunID:      runID,
		Name:       req.Name,
		Identifier: target.Identifier,
		Filename:   target.Filename,
		Quality:    req.Quality,
		Status:     status,
	}
	if cause != nil {
		d.Error = cause.Error()
	}
	if err := r.store.RecordDownload(d); err != nil {
		log.Printf("[警告] 写入下载记录失败: %v", err)
	}
}
