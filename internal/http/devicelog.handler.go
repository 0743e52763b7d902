package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errDeviceInUse     = errors.New("device already in use")
	errAlreadyReturned = errors.New("device already returned")
)

func ListDeviceLogs(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		deviceIDs := ctx.DB.Model(&entity.Device{}).Select("id").Where("company_id = ?", company.ID)

		var logs []entity.DeviceLog
		if err := ctx.DB.Preload("Device").Preload("CheckedOutBy").Where("device_id IN (?)", deviceIDs).Find(&logs).Error; err != nil {
			ctx.Logger.Error("Failed to get device logs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get device logs"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"device_logs": logs})
	}
}

// CheckOutDevice moves a device from available to checked-out and opens a
// log in one transaction. The availability flip is a conditional update so
// two concurrent check-outs cannot both succeed.
func CheckOutDevice(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type checkOutRequest struct {
			Device              string `json:"device" binding:"required"`
			CheckedOutBy        string `json:"checked_out_by" binding:"required"`
			CheckedOutCondition string `json:"checked_out_condition" binding:"required"`
		}

		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		var request checkOutRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		deviceID, err := uuid.Parse(request.Device)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		employeeID, err := uuid.Parse(request.CheckedOutBy)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}

		var device entity.Device
		if err := ctx.DB.Where("id = ? AND company_id = ?", deviceID, company.ID).First(&device).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}

		var employee entity.Employee
		if err := ctx.DB.Where("id = ? AND company_id = ?", employeeID, company.ID).First(&employee).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}

		log := entity.DeviceLog{
			DeviceID:            device.ID,
			CheckedOutByID:      employee.ID,
			CheckedOutCondition: request.CheckedOutCondition,
			Status:              entity.LogStatusOpen,
		}

		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&entity.Device{}).
				Where("id = ? AND is_available = ?", device.ID, true).
				Update("is_available", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errDeviceInUse
			}
			return tx.Create(&log).Error
		})
		if err != nil {
			if errors.Is(err, errDeviceInUse) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Device already used by another employee."})
				return
			}
			ctx.Logger.Error("Failed to check out device", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out device"})
			return
		}

		if err := ctx.DB.Preload("Device").Preload("CheckedOutBy").First(&log, "id = ?", log.ID).Error; err != nil {
			ctx.Logger.Error("Failed to reload device log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check out device"})
			return
		}

		c.JSON(http.StatusCreated, log)
	}
}

// CheckInDevice closes an open log and returns its device to the available
// state. Closing is a conditional update on the log status, so a second
// check-in of the same log affects zero rows and is rejected.
func CheckInDevice(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type checkInRequest struct {
			CheckedInCondition string `json:"checked_in_condition"`
		}

		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device log not found."})
			return
		}

		deviceIDs := ctx.DB.Model(&entity.Device{}).Select("id").Where("company_id = ?", company.ID)

		var log entity.DeviceLog
		if err := ctx.DB.Where("id = ? AND device_id IN (?)", logID, deviceIDs).First(&log).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device log not found."})
			return
		}

		// Body is optional: an absent checked_in_condition is fine.
		var request checkInRequest
		if err := c.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		now := time.Now()
		err = ctx.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&entity.DeviceLog{}).
				Where("id = ? AND status = ?", log.ID, entity.LogStatusOpen).
				Updates(map[string]interface{}{
					"status":               entity.LogStatusClosed,
					"checked_in_condition": request.CheckedInCondition,
					"checked_in_at":        now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errAlreadyReturned
			}
			return tx.Model(&entity.Device{}).
				Where("id = ?", log.DeviceID).
				Update("is_available", true).Error
		})
		if err != nil {
			if errors.Is(err, errAlreadyReturned) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Device already returned."})
				return
			}
			ctx.Logger.Error("Failed to check in device", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in device"})
			return
		}

		if err := ctx.DB.Preload("Device").Preload("CheckedOutBy").First(&log, "id = ?", log.ID).Error; err != nil {
			ctx.Logger.Error("Failed to reload device log", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in device"})
			return
		}

		c.JSON(http.StatusOK, log)
	}
}
