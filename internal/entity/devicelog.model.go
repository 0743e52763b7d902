package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceLog statuses. A log is open from check-out until check-in closes it.
const (
	LogStatusOpen   = "open"
	LogStatusClosed = "closed"
)

// DeviceLog records one check-out/check-in cycle of a device.
// Closed logs are immutable.
type DeviceLog struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	DeviceID            uuid.UUID  `json:"device_id" gorm:"type:uuid;index;not null"`
	Device              Device     `json:"device" gorm:"foreignKey:DeviceID"`
	CheckedOutByID      uuid.UUID  `json:"checked_out_by_id" gorm:"type:uuid;index;not null"`
	CheckedOutBy        Employee   `json:"checked_out_by" gorm:"foreignKey:CheckedOutByID;constraint:OnDelete:CASCADE"`
	CheckedOutCondition string     `json:"checked_out_condition" gorm:"type:varchar(255);not null"`
	CheckedInCondition  string     `json:"checked_in_condition" gorm:"type:varchar(255)"`
	CheckedInAt         *time.Time `json:"checked_in_at"`
	Status              string     `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (l *DeviceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = LogStatusOpen
	}
	return nil
}
