package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billing/internal/config"
	"billing/internal/handler"
	"billing/internal/infrastructure/cache"
	"billing/internal/infrastructure/database"
	"billing/internal/infrastructure/lock"
	"billing/internal/infrastructure/mq"
	"billing/internal/job"
	"billing/pkg/idgen"
	"billing/pkg/logger"
)

func main() {
	configPath := os.Getenv("BILLING_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatalf("加载配置失败: %v", err)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.Format)

	// 初始化 ID 生成器
	if err := idgen.Init(1); err != nil {
		log.Fatalf("初始化 ID 生成器失败: %v", err)
	}

	db := database.Init(&cfg.Database)

	// 创建上下文（用于优雅关闭）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// redis 未启用时退化为数据库事务隔离
	var locker lock.Locker = lock.NopLocker{}
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("初始化 Redis 失败: %v", err)
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
		log.Info("Redis 客户锁已启用")
	}

	// 后台任务的停止函数，关闭时先停任务再关 HTTP
	var stopJobs []func()
	if cfg.Kafka.Enabled {
		publisher, err := mq.NewKafkaPublisher(&cfg.Kafka)
		if err != nil {
			log.Fatalf("初始化 Kafka 失败: %v", err)
		}
		defer publisher.Close()

		outboxSender := job.NewOutboxSender(db, publisher, cfg)
		go outboxSender.Start(ctx)

		cleanupJob := job.NewOutboxCleanupJob(db, cfg)
		go cleanupJob.Start(ctx)

		stopJobs = append(stopJobs, outboxSender.Stop, cleanupJob.Stop)
	}

	router := handler.SetupRouter(db, locker, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动，监听端口: %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	for _, stop := range stopJobs {
		stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("服务关闭异常: %v", err)
	}

	// 取消上下文，中断仍在进行的 Redis/数据库调用
	cancel()

	log.Info("服务已关闭")
}
