// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/doruk/eduhub/internal/app/models/dto"
)

// parseIDParam parses a positive integer path parameter.
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter: %q", paramName, idStr)
	}
	return id, nil
}

// currentUserID reads the authenticated user's id set by the JWT
// middleware. A missing or malformed value aborts with 401.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return 0, false
	}

	userID, ok := value.(int64)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Invalid user ID in context"),
		))
		return 0, false
	}
	return userID, true
}

// badRequest replies with a 400 invalid-request response.
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message),
	})
}
