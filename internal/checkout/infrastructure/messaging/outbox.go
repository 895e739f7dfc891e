// Package messaging 实现结账事件的 Outbox 模式投递
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linghann/retailpos/pkg/logger"
	"github.com/linghann/retailpos/pkg/metrics"
	"github.com/linghann/retailpos/pkg/mq"
)

// 消息投递状态
const (
	statusPending = "pending"
	statusSent    = "sent"
)

// OutboxMessage outbox 行，与业务行同事务写入
type OutboxMessage struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	EventType string    `gorm:"column:event_type;type:varchar(100);index"`
	EventKey  string    `gorm:"column:event_key;type:varchar(64);index"`
	Payload   string    `gorm:"column:payload;type:text"`
	Status    string    `gorm:"column:status;type:varchar(20);index;default:'pending'"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "checkout_outbox_messages"
}

// Enqueue 在给定事务内写入一条待投递事件
// 与订单行共用同一工作单元，事务回滚时事件一并丢弃
func Enqueue(tx *gorm.DB, eventType, eventKey string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := OutboxMessage{
		ID:        uuid.New().String(),
		EventType: eventType,
		EventKey:  eventKey,
		Payload:   string(payload),
		Status:    statusPending,
	}

	return tx.Create(&message).Error
}

// OutboxRelay 轮询 outbox 并投递到 Kafka 的中继
type OutboxRelay struct {
	db        *gorm.DB
	producer  *mq.KafkaProducer
	topic     string
	interval  time.Duration
	batchSize int
	metrics   *metrics.Metrics
}

// NewOutboxRelay 创建 outbox 中继，metrics 允许为 nil
func NewOutboxRelay(db *gorm.DB, producer *mq.KafkaProducer, topic string, interval time.Duration, batchSize int, m *metrics.Metrics) *OutboxRelay {
	return &OutboxRelay{
		db:        db,
		producer:  producer,
		topic:     topic,
		interval:  interval,
		batchSize: batchSize,
		metrics:   m,
	}
}

// Run 启动轮询循环，ctx 取消后退出
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.relayBatch(ctx); err != nil {
				logger.Error(ctx, "Outbox relay batch failed", "error", err)
			}
		}
	}
}

// relayBatch 投递一批待处理消息
// 投递成功才标记 sent，失败的消息留待下轮重试（至少一次语义）
func (r *OutboxRelay) relayBatch(ctx context.Context) error {
	var messages []OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", statusPending).
		Order("created_at asc").
		Limit(r.batchSize).
		Find(&messages).Error
	if err != nil {
		return err
	}

	for _, message := range messages {
		if err := r.producer.SendRaw(ctx, r.topic, message.EventKey, []byte(message.Payload)); err != nil {
			return err
		}

		err := r.db.WithContext(ctx).
			Model(&OutboxMessage{}).
			Where("id = ?", message.ID).
			Update("status", statusSent).Error
		if err != nil {
			return err
		}

		if r.metrics != nil {
			r.metrics.OutboxRelayedTotal.Inc()
		}
	}

	return nil
}

// CleanupSent 清理给定时间之前已投递的消息
func (r *OutboxRelay) CleanupSent(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", statusSent, before).
		Delete(&OutboxMessage{}).Error
}
