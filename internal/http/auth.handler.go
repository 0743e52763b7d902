package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanzid64/assets-tracker/internal/appcontext"
	"github.com/tanzid64/assets-tracker/internal/entity"
	"github.com/tanzid64/assets-tracker/internal/utils"
	"go.uber.org/zap"
)

func Login(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		type loginRequest struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		var request loginRequest
		if err := c.BindJSON(&request); err != nil {
			ctx.Logger.Error("Failed to bind request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to bind request"})
			return
		}

		var user entity.User
		if err := ctx.DB.Where("email = ?", request.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or Password is not Valid"})
			return
		}

		if !utils.CheckPassword(user.PasswordHash, request.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email or Password is not Valid"})
			return
		}

		tokenString, err := utils.GenerateJWT(user.ID.String())
		if err != nil {
			ctx.Logger.Error("Failed to generate JWT token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate JWT token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": tokenString, "message": "Login Successful"})
	}
}
