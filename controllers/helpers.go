package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-eats/canteen-app/middlewares"
	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

var errUnauthenticated = errors.New("user id not found in context")

// respondServiceError maps a service error onto its HTTP status.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		utils.ErrorLogger.WithError(err).Error("unexpected error")
		utils.RespondErrorCode(c, http.StatusInternalServerError, services.ErrPersistence.Code, services.ErrPersistence)
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindAuthorization:
		status = http.StatusForbidden
		if errors.Is(err, services.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
	case services.KindPersistence:
		utils.ErrorLogger.WithError(err).Error("persistence failure")
		utils.RespondErrorCode(c, status, svcErr.Code, services.ErrPersistence)
		return
	}

	utils.RespondErrorCode(c, status, svcErr.Code, svcErr)
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondErrorCode(c, http.StatusBadRequest, services.ErrInvalidInput.Code, err)
}

// currentUser rebuilds the caller from the claims AuthMiddleware stored.
func currentUser(c *gin.Context) (models.User, bool) {
	userID, ok := c.Get(middlewares.ContextUserID)
	if !ok {
		utils.RespondErrorCode(c, http.StatusUnauthorized, "unauthorized", errUnauthenticated)
		return models.User{}, false
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		utils.RespondErrorCode(c, http.StatusUnauthorized, "unauthorized", errUnauthenticated)
		return models.User{}, false
	}
	return models.User{ID: id, Role: c.GetString(middlewares.ContextRole)}, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondErrorCode(c, http.StatusBadRequest, services.ErrInvalidInput.Code, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}
