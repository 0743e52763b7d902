package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant boundary. Every employee, device and device log
// belongs to exactly one company, and scoped queries key off the owner.
type Company struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   uuid.UUID  `json:"owner_id" gorm:"type:uuid;uniqueIndex;not null"`
	Owner     User       `json:"owner" gorm:"foreignKey:OwnerID"`
	Employees []Employee `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Devices   []Device   `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (co *Company) BeforeCreate(tx *gorm.DB) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return nil
}
