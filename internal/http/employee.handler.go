package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/entity"
	"github.com/tanzid64/assets-tracker/internal/services"
	"github.com/tanzid64/assets-tracker/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// callerCompany resolves the caller's owned company and writes the scoping
// error responses: 404 on reads when the caller owns no company, 400 on
// creates. Returns nil after responding.
func callerCompany(ctx *appcontext.Context, c *gin.Context, creating bool) *entity.Company {
	userID, err := utils.GetUserIDFromClaims(c)
	if err != nil {
		ctx.Logger.Error("Failed to get user ID from claims", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil
	}

	company, err := utils.CompanyOwnedBy(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if creating {
				c.JSON(http.StatusBadRequest, gin.H{"error": "User doesn't have a company"})
			} else {
				c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			}
			return nil
		}
		ctx.Logger.Error("Failed to resolve company", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve company"})
		return nil
	}

	return company
}

func ListEmployees(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		var employees []entity.Employee
		if err := ctx.DB.Preload("Company.Owner").Where("company_id = ?", company.ID).Find(&employees).Error; err != nil {
			ctx.Logger.Error("Failed to get employees", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get employees"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"employees": employees})
	}
}

func GetEmployee(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		employee, ok := employeeInCompany(ctx, c, company)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, employee)
	}
}

// CreateEmployee always assigns the caller's company; any company supplied
// in the request body is ignored.
func CreateEmployee(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type createEmployeeRequest struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Address string `json:"address"`
		}

		company := callerCompany(ctx, c, true)
		if company == nil {
			return
		}

		var request createEmployeeRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		employee := entity.Employee{
			Name:      request.Name,
			Email:     request.Email,
			Address:   request.Address,
			CompanyID: company.ID,
		}

		if err := ctx.DB.Create(&employee).Error; err != nil {
			ctx.Logger.Error("Failed to create employee", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create employee"})
			return
		}

		if err := services.SendWelcomeEmail(employee.Email, employee.Name, company.Name); err != nil {
			ctx.Logger.Warn("Failed to send welcome email", zap.Error(err))
		}

		if err := ctx.DB.Preload("Company.Owner").First(&employee, "id = ?", employee.ID).Error; err != nil {
			ctx.Logger.Error("Failed to reload employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
			return
		}

		c.JSON(http.StatusCreated, employee)
	}
}

func UpdateEmployee(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type updateEmployeeRequest struct {
			Name    *string `json:"name"`
			Email   *string `json:"email"`
			Address *string `json:"address"`
		}

		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		employee, ok := employeeInCompany(ctx, c, company)
		if !ok {
			return
		}

		var request updateEmployeeRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		updates := map[string]interface{}{}
		if request.Name != nil {
			updates["name"] = *request.Name
		}
		if request.Email != nil {
			updates["email"] = *request.Email
		}
		if request.Address != nil {
			updates["address"] = *request.Address
		}

		if len(updates) > 0 {
			if err := ctx.DB.Model(employee).Updates(updates).Error; err != nil {
				ctx.Logger.Error("Failed to update employee", zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update employee"})
				return
			}
		}

		if err := ctx.DB.Preload("Company.Owner").First(employee, "id = ?", employee.ID).Error; err != nil {
			ctx.Logger.Error("Failed to reload employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
			return
		}

		c.JSON(http.StatusOK, employee)
	}
}

func DeleteEmployee(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		company := callerCompany(ctx, c, false)
		if company == nil {
			return
		}

		employee, ok := employeeInCompany(ctx, c, company)
		if !ok {
			return
		}

		err := ctx.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("checked_out_by_id = ?", employee.ID).Delete(&entity.DeviceLog{}).Error; err != nil {
				return err
			}
			return tx.Delete(employee).Error
		})
		if err != nil {
			ctx.Logger.Error("Failed to delete employee", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// employeeInCompany loads the target employee scoped to the caller's
// company. The company filter is part of the lookup itself so a caller can
// never address another tenant's employee by primary key.
func employeeInCompany(ctx *appcontext.Context, c *gin.Context, company *entity.Company) (*entity.Employee, bool) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return nil, false
	}

	var employee entity.Employee
	if err := ctx.DB.Preload("Company.Owner").Where("id = ? AND company_id = ?", employeeID, company.ID).First(&employee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return nil, false
	}

	return &employee, true
}
