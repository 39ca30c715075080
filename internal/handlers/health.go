package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
)

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
