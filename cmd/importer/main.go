package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	stdlog "log"

	kratoslog "github.com/go-kratos/kratos/v2/log"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/conf"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/config"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/data"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/importer"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/logger"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/narrative"
)

var (
	flagconf    string
	flagProject int
	flagCSV     string
	flagBoard   string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/importer.yaml", "config path, eg: -conf importer.yaml")
	flag.IntVar(&flagProject, "project", 0, "target project id")
	flag.StringVar(&flagCSV, "csv", "", "path to a CSV export to import")
	flag.StringVar(&flagBoard, "board", "", "path to a board JSON export to import")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		stdlog.Fatalf("无法加载配置文件: %v", err)
	}
	if flagProject <= 0 {
		stdlog.Fatal("参数错误: 必须通过 -project 指定目标项目 ID")
	}
	if flagCSV == "" && flagBoard == "" {
		stdlog.Fatal("参数错误: 必须通过 -csv 或 -board 指定导入文件")
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		stdlog.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动任务导入工具...")

	ctx := context.Background()
	klogger := kratoslog.NewStdLogger(os.Stdout)

	// 3. 初始化数据库连接
	d, cleanup, err := data.NewData(&conf.Data{
		Database: &conf.Database{Driver: cfg.DB.Driver, Source: cfg.DB.Source},
	}, klogger)
	if err != nil {
		logger.Log.Fatalf("无法连接数据库: %v", err)
	}
	defer cleanup()
	logger.Log.Info("已成功连接到数据库")

	// 4. 初始化 LLM（未配置时退化为启发式分析）
	var provider biz.NarrativeProvider
	if cfg.LLM.APIKey != "" {
		provider, err = narrative.NewProvider(&conf.LLM{
			BaseUrl: cfg.LLM.BaseURL,
			ApiKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Qps:     int32(cfg.Concurrency.QPS),
			Rpm:     int32(cfg.Concurrency.RPM),
		}, klogger)
		if err != nil {
			logger.Log.Errorf("无法初始化 LLM: %v. 将使用启发式分析。", err)
			provider = nil
		}
	} else {
		logger.Log.Info("未配置 LLM，跳过智能任务分析")
	}

	tasks := biz.NewTaskUseCase(
		data.NewProjectRepo(d, klogger),
		data.NewTaskRepo(d, klogger),
		provider,
		klogger,
	)

	// 5. 解析导入文件
	drafts, err := loadDrafts()
	if err != nil {
		logger.Log.Fatalf("无法解析导入文件: %v", err)
	}
	logger.Log.Infof("解析到 %d 条任务草稿", len(drafts))

	// 6. 写入任务并计算评分
	created, err := tasks.ImportDrafts(ctx, flagProject, drafts)
	if err != nil {
		logger.Log.Fatalf("导入失败: %v", err)
	}
	for _, t := range created {
		logger.Log.Infof("已导入任务 #%d %q (priority=%.0f risk=%s)", t.ID, t.Title, t.PriorityScore, t.RiskLevel)
	}
	logger.Log.Infof("导入完成，共 %d 条任务", len(created))
}

func loadDrafts() ([]importer.TaskDraft, error) {
	if flagCSV != "" {
		f, err := os.Open(flagCSV)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return importer.FromCSV(f)
	}

	raw, err := os.ReadFile(flagBoard)
	if err != nil {
		return nil, err
	}
	var cards []importer.BoardCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, err
	}
	return importer.FromBoard(cards), nil
}
