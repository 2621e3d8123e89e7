package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/api/handler/v1/response"
	"github.com/seatserve/canteen-api/internal/api/middleware"
	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/service"
)

// SeatSessionHeader carries the seat session id for clients that cannot keep cookies.
const SeatSessionHeader = "X-Seat-Session"

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext loads the actor authenticated by middleware.VerifyJWT.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	userID := ctx.GetUint(middleware.ContextKeyUserID)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errors.New("no authenticated user in context"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(err)
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("uSvc.GetUser -> %w", err))
	}

	return user, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s", name))
	}

	return uint(value), nil
}

func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, *response.Err) {
	value, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, response.ErrBadRequest(fmt.Errorf("invalid %s", name))
	}

	return value, nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         ops
// @Produce      json
// @Success      200  {object}  response.Message
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Message{Message: "OK"})
}
