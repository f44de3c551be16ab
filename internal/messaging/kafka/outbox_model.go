package kafka

import "time"

// OutboxRecord is the table layout behind OutboxRepository. It exists so the
// schema is migrated together with the entity tables.
type OutboxRecord struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	RequestID     string `gorm:"type:varchar(64)"`
	AggregateType string `gorm:"type:varchar(64);not null"`
	AggregateID   string `gorm:"type:varchar(64);not null"`
	EventType     string `gorm:"type:varchar(64);not null"`
	Topic         string `gorm:"type:varchar(255);not null"`
	Payload       []byte `gorm:"type:jsonb;not null"`
	Status        string `gorm:"type:varchar(16);not null;default:'pending';index:idx_outbox_status_retry"`
	RetryCount    int    `gorm:"not null;default:0"`
	ErrorMessage  *string
	NextRetryAt   *time.Time `gorm:"index:idx_outbox_status_retry"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}
