package utils

import (
	"github.com/google/uuid"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/entity"
)

// CompanyOwnedBy resolves the company owned by the given user. Ownership is
// one-to-one: owner_id carries a unique index, so at most one row can match.
// Returns gorm.ErrRecordNotFound when the user owns no company.
func CompanyOwnedBy(ctx *appcontext.Context, userID uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	if err := ctx.DB.Where("owner_id = ?", userID).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// UserCanManageCompany reports whether the user may update or delete the
// company: staff users may manage any company, everyone else only their own.
func UserCanManageCompany(ctx *appcontext.Context, userID uuid.UUID, company *entity.Company) bool {
	var user entity.User
	if err := ctx.DB.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return user.IsStaff || company.OwnerID == user.ID
}
