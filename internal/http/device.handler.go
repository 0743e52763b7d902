package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ListDevices(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		var devices []entity.Device
		if err := ctx.DB.Where("company_id = ?", company.ID).Find(&devices).Error; err != nil {
			ctx.Logger.Error("Failed to get devices", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get devices"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"devices": devices})
	}
}

func GetDevice(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		device, ok := deviceInCompany(ctx, c, company)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, device)
	}
}

func CreateDevice(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createDeviceRequest struct {
			Name     string `json:"name" binding:"required"`
			SerialNo string `json:"serial_no" binding:"required"`
		}

		company := callerCompany(ctx, c, true)
		if company == nil {
			return
		}

		var request createDeviceRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		device := entity.Device{
			Name:        request.Name,
			SerialNo:    request.SerialNo,
			IsAvailable: true,
			CompanyID:   company.ID,
		}

		if err := ctx.DB.Create(&device).Error; err != nil {
			ctx.Logger.Error("Failed to create device", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create device"})
			return
		}

		c.JSON(http.StatusCreated, device)
	}
}

// UpdateDevice is a partial update: name and serial_no are both optional.
// Availability is not writable here; only check-out/check-in change it.
func UpdateDevice(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type updateDeviceRequest struct {
			Name     *string `json:"name"`
			SerialNo *string `json:"serial_no"`
		}

		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		device, ok := deviceInCompany(ctx, c, company)
		if !ok {
			return
		}

		var request updateDeviceRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		updates := map[string]interface{}{}
		if request.Name != nil {
			updates["name"] = *request.Name
		}
		if request.SerialNo != nil {
			updates["serial_no"] = *request.SerialNo
		}

		if len(updates) > 0 {
			if err := ctx.DB.Model(device).Updates(updates).Error; err != nil {
				ctx.Logger.Error("Failed to update device", zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update device"})
				return
			}
		}

		if err := ctx.DB.First(device, "id = ?", device.ID).Error; err != nil {
			ctx.Logger.Error("Failed to reload device", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device"})
			return
		}

		c.JSON(http.StatusOK, device)
	}
}

func DeleteDevice(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		device, ok := deviceInCompany(ctx, c, company)
		if !ok {
			return
		}

		err := ctx.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("device_id = ?", device.ID).Delete(&entity.DeviceLog{}).Error; err != nil {
				return err
			}
			return tx.Delete(device).Error
		})
		if err != nil {
			ctx.Logger.Error("Failed to delete device", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete device"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// deviceInCompany loads the target device scoped to the caller's company,
// same contract as employeeInCompany.
func deviceInCompany(ctx *appcontext.Context, c *gin.Context, company *entity.Company) (*entity.Device, bool) {
	deviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return nil, false
	}

	var device entity.Device
	if err := ctx.DB.Where("id = ? AND company_id = ?", deviceID, company.ID).First(&device).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return nil, false
	}

	return &device, true
}
