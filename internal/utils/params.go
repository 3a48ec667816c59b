package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func GetMonitorID(ctx *gin.Context) (string, error) {
	monitorID := ctx.Param("monitor_id")

	if monitorID == "" {
		return "", errors.New("Monitor ID not found")
	}

	return monitorID, nil
}
