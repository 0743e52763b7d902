package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/entity"
	"github.com/tanzid64/assets-tracker/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterCompany provisions the owning user and the company in a single
// transaction. The created user becomes the company owner and can log in
// with the supplied credentials afterwards.
func RegisterCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type registerCompanyRequest struct {
			Name     string `json:"name" binding:"required"`
			Username string `json:"username" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		var request registerCompanyRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		passwordHash, err := utils.HashPassword(request.Password)
		if err != nil {
			ctx.Logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register company"})
			return
		}

		company := entity.Company{Name: request.Name}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			owner := entity.User{
				Username:     request.Username,
				Email:        request.Email,
				PasswordHash: passwordHash,
			}
			if err := tx.Create(&owner).Error; err != nil {
				return err
			}

			company.OwnerID = owner.ID
			if err := tx.Omit("Owner").Create(&company).Error; err != nil {
				return err
			}
			company.Owner = owner
			return nil
		})
		if err != nil {
			ctx.Logger.Error("Failed to register company", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to register company"})
			return
		}

		c.JSON(http.StatusCreated, company)
	}
}

func ListCompanies(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var companies []entity.Company
		if err := ctx.DB.Preload("Owner").Find(&companies).Error; err != nil {
			ctx.Logger.Error("Failed to get companies", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get companies"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"companies": companies})
	}
}

func GetCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		var company entity.Company
		if err := ctx.DB.Preload("Owner").First(&company, "id = ?", companyID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		c.JSON(http.StatusOK, company)
	}
}

func UpdateCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type updateCompanyRequest struct {
			Name *string `json:"name"`
		}

		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		companyID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		var company entity.Company
		if err := ctx.DB.First(&company, "id = ?", companyID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		// Re-check ownership against the loaded row, not just the claims.
		if !utils.UserCanManageCompany(ctx, userID, &company) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}

		var request updateCompanyRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		if request.Name != nil {
			if err := ctx.DB.Model(&company).Update("name", *request.Name).Error; err != nil {
				ctx.Logger.Error("Failed to update company", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
				return
			}
		}

		if err := ctx.DB.Preload("Owner").First(&company, "id = ?", company.ID).Error; err != nil {
			ctx.Logger.Error("Failed to reload company", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
			return
		}

		c.JSON(http.StatusOK, company)
	}
}

// DeleteCompany removes the company and everything scoped to it: device
// logs, devices and employees go in the same transaction.
func DeleteCompany(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromClaims(c)
		if err != nil {
			ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		companyID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		var company entity.Company
		if err := ctx.DB.First(&company, "id = ?", companyID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}

		if !utils.UserCanManageCompany(ctx, userID, &company) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			deviceIDs := tx.Model(&entity.Device{}).Select("id").Where("company_id = ?", company.ID)
			if err := tx.Where("device_id IN (?)", deviceIDs).Delete(&entity.DeviceLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("company_id = ?", company.ID).Delete(&entity.Device{}).Error; err != nil {
				return err
			}
			if err := tx.Where("company_id = ?", company.ID).Delete(&entity.Employee{}).Error; err != nil {
				return err
			}
			return tx.Delete(&company).Error
		})
		if err != nil {
			ctx.Logger.Error("Failed to delete company", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
