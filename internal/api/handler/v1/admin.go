package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/api/handler/v1/request"
	"github.com/seatserve/canteen-api/internal/api/handler/v1/response"
	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/service"
)

type AdminService interface {
	CreateManager(ctx context.Context, actor domain.User, manager domain.User) (domain.User, error)
	AssignManager(ctx context.Context, actor domain.User, canteenID, userID uint) (domain.ManagerAssignment, error)
	SetQRCodeActive(ctx context.Context, actor domain.User, token uuid.UUID, active bool) (domain.QRCode, error)
}

type AdminHandler struct {
	svc  AdminService
	uSvc UserService
}

func NewAdminHandler(svc AdminService, uSvc UserService) *AdminHandler {
	return &AdminHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateManager godoc
// @Summary      Create a manager account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateManagerRequest  true  "request body"
// @Success      201  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/managers [post]
func (h *AdminHandler) HandleCreateManager(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	req := request.CreateManagerRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	manager, err := h.svc.CreateManager(ctx.Request.Context(), actor, domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUserEmailExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
		default:
			err = fmt.Errorf("v1.HandleCreateManager -> h.svc.CreateManager -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, manager)
}

// HandleAssignManager godoc
// @Summary      Assign the manager of a canteen
// @Description  Replaces the current manager of the canteen, who loses access immediately.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        canteenID  path      int                           true  "Canteen ID"
// @Param        request    body      request.AssignManagerRequest  true  "request body"
// @Success      200  {object}  domain.ManagerAssignment
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/canteens/{canteenID}/manager [put]
func (h *AdminHandler) HandleAssignManager(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	canteenID, respErr := parseUintParam(ctx, "canteenID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	req := request.AssignManagerRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	assignment, err := h.svc.AssignManager(ctx.Request.Context(), actor, canteenID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrNotFound):
			response.RenderErr(ctx, response.ErrNotFound("canteen or user", "ID", canteenID))
		default:
			err = fmt.Errorf("v1.HandleAssignManager -> h.svc.AssignManager -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// HandleSetQRCodeActive godoc
// @Summary      Activate or deactivate a seat QR code
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        qrToken  path      string                          true  "QR scan token"
// @Param        request  body      request.SetQRCodeActiveRequest  true  "request body"
// @Success      200  {object}  domain.QRCode
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/qrcodes/{qrToken} [patch]
func (h *AdminHandler) HandleSetQRCodeActive(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	token, respErr := parseUUIDParam(ctx, "qrToken")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	req := request.SetQRCodeActiveRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	qr, err := h.svc.SetQRCodeActive(ctx.Request.Context(), actor, token, *req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrNotFound):
			response.RenderErr(ctx, response.ErrNotFound("qr code", "token", token))
		default:
			err = fmt.Errorf("v1.HandleSetQRCodeActive -> h.svc.SetQRCodeActive -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, qr)
}
