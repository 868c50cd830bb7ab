package job

import (
	"context"
	"time"

	"billing/internal/config"
	"billing/internal/repository"
	"billing/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OutboxCleanupJob 定期删除超过保留期的 SENT 消息
type OutboxCleanupJob struct {
	outboxRepo *repository.OutboxRepository
	stopCh     chan struct{}
	interval   time.Duration
	retention  time.Duration
	batchSize  int
	now        func() time.Time
	log        *logrus.Entry
}

func NewOutboxCleanupJob(db *gorm.DB, cfg *config.Config) *OutboxCleanupJob {
	return &OutboxCleanupJob{
		outboxRepo: repository.NewOutboxRepository(db),
		stopCh:     make(chan struct{}),
		interval:   10 * time.Minute,
		retention:  time.Duration(cfg.Business.OutboxRetentionHours) * time.Hour,
		batchSize:  500,
		now:        time.Now,
		log:        logger.WithComponent("outbox_cleanup"),
	}
}

func (j *OutboxCleanupJob) Start(ctx context.Context) {
	if j.retention <= 0 {
		j.log.Info("未配置保留时长，清理任务不启动")
		return
	}
	j.log.WithField("retention", j.retention.String()).Info("清理任务启动")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("收到停止信号，任务退出")
			return
		case <-j.stopCh:
			j.log.Info("任务停止")
			return
		case <-ticker.C:
			j.Purge(ctx)
		}
	}
}

func (j *OutboxCleanupJob) Stop() {
	close(j.stopCh)
}

// Purge 分批删除直到没有过期消息，返回删除总数
func (j *OutboxCleanupJob) Purge(ctx context.Context) int64 {
	before := j.now().Add(-j.retention)

	var total int64
	for {
		n, err := j.outboxRepo.DeleteSentBefore(ctx, before, j.batchSize)
		if err != nil {
			j.log.WithError(err).Error("清理消息失败")
			break
		}
		total += n
		if n < int64(j.batchSize) {
			break
		}
	}

	if total > 0 {
		j.log.WithField("deleted", total).Info("已清理过期消息")
	}
	return total
}
