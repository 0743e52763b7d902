package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device availability is flipped only by the check-out/check-in protocol,
// never through the generic device update path.
type Device struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string      `json:"name" gorm:"type:varchar(255);not null"`
	SerialNo    string      `json:"serial_no" gorm:"type:varchar(255);uniqueIndex;not null"`
	IsAvailable bool        `json:"is_available" gorm:"not null;default:true"`
	CompanyID   uuid.UUID   `json:"company_id" gorm:"type:uuid;index;not null"`
	Logs        []DeviceLog `json:"-" gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
