package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seatserve/canteen-api/internal/api/handler/v1/response"
	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/service"
)

type DashboardService interface {
	OrderCounts(ctx context.Context, actor domain.User) (domain.OrderCounts, error)
	ListOrders(ctx context.Context, actor domain.User, status domain.OrderStatus, limit int) ([]domain.Order, error)
	ManagedCanteens(ctx context.Context, actor domain.User) ([]domain.Canteen, error)
}

type DashboardHandler struct {
	svc      DashboardService
	orderSvc OrderService
	uSvc     UserService
}

func NewDashboardHandler(svc DashboardService, orderSvc OrderService, uSvc UserService) *DashboardHandler {
	return &DashboardHandler{
		svc:      svc,
		orderSvc: orderSvc,
		uSvc:     uSvc,
	}
}

// HandleGetStats godoc
// @Summary      Count orders by status
// @Description  Counts cover only the canteens the manager is assigned to.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.OrderStats
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) HandleGetStats(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	counts, err := h.svc.OrderCounts(ctx.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("HandleGetStats -> h.svc.OrderCounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrderStats(counts))
}

// HandleListOrders godoc
// @Summary      List orders of the manager's canteens
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "NEW or DELIVERED"  default(NEW)
// @Param        limit   query     int     false  "Page size"
// @Success      200  {object}  response.Orders
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/orders [get]
func (h *DashboardHandler) HandleListOrders(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.OrderStatus(strings.ToUpper(ctx.DefaultQuery("status", string(domain.OrderStatusNew))))

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid limit")))
			return
		}
		limit = value
	}

	orders, err := h.svc.ListOrders(ctx.Request.Context(), actor, status, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("HandleListOrders -> h.svc.ListOrders -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.Orders{
		Status: status,
		Orders: orders,
	})
}

// HandleMarkDelivered godoc
// @Summary      Mark an order as delivered
// @Description  Delivering an already delivered order is a no-op. Orders outside the manager's canteens are reported as not found.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        orderID  path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/orders/{orderID}/deliver [post]
func (h *DashboardHandler) HandleMarkDelivered(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	uid, respErr := parseUUIDParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.orderSvc.MarkDelivered(ctx.Request.Context(), actor, uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", uid))
			return
		}

		err = fmt.Errorf("HandleMarkDelivered -> h.orderSvc.MarkDelivered -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleGetCanteens godoc
// @Summary      List the canteens the manager is assigned to
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Canteen
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/canteens [get]
func (h *DashboardHandler) HandleGetCanteens(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	canteens, err := h.svc.ManagedCanteens(ctx.Request.Context(), actor)
	if err != nil {
		err = fmt.Errorf("HandleGetCanteens -> h.svc.ManagedCanteens -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, canteens)
}
