package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"albicon/internal/catalog"
	"albicon/internal/config"
	"albicon/internal/fetch"
	"albicon/internal/job"
	"albicon/internal/request"
	"albicon/internal/server"
	"albicon/internal/store"
	"albicon/internal/util"
)

var (
	inputFile = flag.String("input", "", "请求清单文件 (覆盖配置文件)")
	outputDir = flag.String("output", "", "图标输出目录 (覆盖配置文件)")
	serveMode = flag.Bool("serve", false, "服务模式: 启动本地 API 而非执行批量下载")
	port      = flag.Int("port", 0, "服务端口 (仅服务模式; 覆盖配置文件)")
	devMode   = flag.Bool("dev", false, "开发模式")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Albicon - 阿尔比恩物品图标下载工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	// 命令行参数覆盖配置；兼容位置参数 [input] [outputDir]
	args := flag.Args()
	if len(args) >= 1 {
		cfg.Data.InputFile = args[0]
	}
	if len(args) >= 2 {
		cfg.Data.OutputDir = args[1]
	}
	if *inputFile != "" {
		cfg.Data.InputFile = *inputFile
	}
	if *outputDir != "" {
		cfg.Data.OutputDir = *outputDir
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	// 构建物品映射: 内嵌数据集 + 配置中的额外数据源
	builder := catalog.NewBuilder()
	builder.AddEmbedded()
	for _, path := range cfg.Data.ExtraCatalogs {
		if err := builder.AddFile(path); err != nil {
			log.Printf("[警告] 加载额外数据源 %s 失败: %v", path, err)
		}
	}
	cat := builder.Build()
	if cat.Len() == 0 {
		log.Fatal("物品映射为空，无法继续")
	}
	fmt.Printf("物品映射已加载: %d 条\n", cat.Len())

	// 确保输出目录存在
	if _, err := config.EnsureOutputDir(cfg); err != nil {
		log.Fatalf("创建输出目录失败: %v", err)
	}

	// 初始化下载历史存储；失败时继续运行但不记录历史
	var historyStore *store.Store
	historyStore, err = store.New(config.HistoryDBPath(cfg))
	if err != nil {
		log.Printf("[警告] 初始化历史数据库失败，本次运行不记录历史: %v", err)
		historyStore = nil
	} else {
		defer historyStore.Close()
	}

	client := fetch.NewClient(cfg.Render.BaseURL, time.Duration(cfg.Render.TimeoutSeconds)*time.Second)

	if *serveMode {
		runServer(cfg, cat, client, historyStore)
		return
	}

	runBatch(cfg, cat, client, historyStore)
}

// runBatch 执行一次批量下载并重写请求清单
func runBatch(cfg *config.AppConfig, cat *catalog.Catalog, client *fetch.Client, historyStore *store.Store) {
	requests, err := request.ParseFile(cfg.Data.InputFile)
	if err != nil {
		log.Fatalf("读取请求清单失败: %v", err)
	}
	if len(requests) == 0 {
		fmt.Println("请求清单中无有效条目")
		return
	}

	runner := job.NewRunner(cat, client, historyStore, cfg.Data.OutputDir)
	result := runner.Run(cfg.Data.InputFile, requests)

	// 用失败行覆盖请求清单，成功行不再保留
	if err := request.RewriteFile(cfg.Data.InputFile, result.FailedLines); err != nil {
		log.Printf("[警告] 重写请求清单失败: %v", err)
	}

	fmt.Println()
	if len(result.FailedLines) > 0 {
		fmt.Printf("完成: 成功 %d / 共 %d，%d 条失败行已保留在 %s\n",
			result.Succeeded, result.Total, len(result.FailedLines), cfg.Data.InputFile)
	} else {
		fmt.Printf("完成: 全部 %d 条下载成功，%s 已清空\n", result.Total, cfg.Data.InputFile)
	}
}

// runServer 启动本地 API 服务
func runServer(cfg *config.AppConfig, cat *catalog.Catalog, client *fetch.Client, historyStore *store.Store) {
	srv := server.NewServer(cfg, cat, client, historyStore)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)

	fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
	fmt.Println("按 Ctrl+C 停止服务...")

	// 打开浏览器展示服务状态
	if !cfg.Server.DevMode {
		go func() {
			if err := util.OpenBrowserWithFallback(url); err != nil {
				fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
			}
		}()
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	if err := srv.Run(addr); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
