package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/api/handler/v1/request"
	"github.com/seatserve/canteen-api/internal/api/handler/v1/response"
	"github.com/seatserve/canteen-api/internal/config"
	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/service"
)

type SeatService interface {
	ResolveScan(ctx context.Context, sessionID string, token uuid.UUID) (domain.SeatLocation, domain.SeatContext, error)
	CurrentSeat(ctx context.Context, sessionID string) (domain.SeatContext, domain.SeatLocation, error)
}

type MenuService interface {
	GetMenu(ctx context.Context, canteenID uint) ([]domain.MenuItem, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, sessionID string, req service.CreateOrderRequest) (domain.Order, bool, error)
	GetSeatOrder(ctx context.Context, sessionID string, uid uuid.UUID) (domain.Order, error)
	MarkDelivered(ctx context.Context, actor domain.User, uid uuid.UUID) (domain.Order, error)
}

// DinerHandler serves the unauthenticated, seat-scoped ordering flow.
type DinerHandler struct {
	conf     *config.SessionConfig
	seatSvc  SeatService
	menuSvc  MenuService
	orderSvc OrderService
}

func NewDinerHandler(conf *config.SessionConfig, seatSvc SeatService, menuSvc MenuService, orderSvc OrderService) *DinerHandler {
	return &DinerHandler{
		conf:     conf,
		seatSvc:  seatSvc,
		menuSvc:  menuSvc,
		orderSvc: orderSvc,
	}
}

// HandleScan godoc
// @Summary      Resolve a scanned seat QR code
// @Description  Binds the browsing session to the seat of the QR code and returns the canteen menu.
// @Tags         diner
// @Produce      json
// @Param        qrToken  path      string  true  "QR scan token"
// @Success      200  {object}  response.Scan
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /scan/{qrToken} [get]
func (h *DinerHandler) HandleScan(ctx *gin.Context) {
	token, respErr := parseUUIDParam(ctx, "qrToken")
	if respErr != nil {
		response.RenderErr(ctx, response.ErrNotFound("qr code", "token", ctx.Param("qrToken")))
		return
	}

	location, seatCtx, err := h.seatSvc.ResolveScan(ctx.Request.Context(), h.sessionID(ctx), token)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("qr code", "token", token))
			return
		}

		err = fmt.Errorf("HandleScan -> h.seatSvc.ResolveScan -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	items, err := h.menuSvc.GetMenu(ctx.Request.Context(), location.Canteen.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("canteen", "ID", location.Canteen.ID))
			return
		}

		err = fmt.Errorf("HandleScan -> h.menuSvc.GetMenu -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.setSessionCookie(ctx, seatCtx.SessionID)

	ctx.JSON(http.StatusOK, response.Scan{
		SessionID: seatCtx.SessionID,
		ExpiresAt: seatCtx.ExpiresAt(h.conf.TTL),
		Seat:      location.Seat,
		Lab:       location.Lab,
		Canteen:   location.Canteen,
		Menu:      response.NewMenu(items),
	})
}

// HandleGetMenu godoc
// @Summary      Get the menu of a canteen
// @Tags         diner
// @Produce      json
// @Param        canteenID  path      int  true  "Canteen ID"
// @Success      200  {array}   response.MenuItem
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /canteens/{canteenID}/menu [get]
func (h *DinerHandler) HandleGetMenu(ctx *gin.Context) {
	canteenID, respErr := parseUintParam(ctx, "canteenID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	h.renderMenu(ctx, canteenID)
}

// HandleGetSessionMenu godoc
// @Summary      Get the menu of the canteen serving the scanned seat
// @Tags         diner
// @Produce      json
// @Success      200  {array}   response.MenuItem
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /session/menu [get]
func (h *DinerHandler) HandleGetSessionMenu(ctx *gin.Context) {
	_, location, err := h.seatSvc.CurrentSeat(ctx.Request.Context(), h.sessionID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrSessionExpired) {
			response.RenderErr(ctx, response.ErrSessionExpired(err))
			return
		}

		err = fmt.Errorf("HandleGetSessionMenu -> h.seatSvc.CurrentSeat -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderMenu(ctx, location.Canteen.ID)
}

func (h *DinerHandler) renderMenu(ctx *gin.Context, canteenID uint) {
	items, err := h.menuSvc.GetMenu(ctx.Request.Context(), canteenID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("canteen", "ID", canteenID))
			return
		}

		err = fmt.Errorf("renderMenu -> h.menuSvc.GetMenu -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewMenu(items))
}

// HandleCreateOrder godoc
// @Summary      Place an order for the scanned seat
// @Description  The seat is taken from the seat session, never from the request. Resubmitting with the same idempotency key returns the first order.
// @Tags         diner
// @Accept       json
// @Produce      json
// @Param        input            body      request.CreateOrderRequest  true   "Order"
// @Param        Idempotency-Key  header    string                      false  "Idempotency key"
// @Success      201  {object}  domain.Order
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /orders [post]
func (h *DinerHandler) HandleCreateOrder(ctx *gin.Context) {
	var input request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if input.IdempotencyKey == "" {
		input.IdempotencyKey = ctx.GetHeader(request.IdempotencyKeyHeader)
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	input.IdempotencyKey = strings.TrimSpace(input.IdempotencyKey)

	order, replayed, err := h.orderSvc.CreateOrder(ctx.Request.Context(), h.sessionID(ctx), service.CreateOrderRequest{
		MenuItemID:     input.ItemID,
		OptionID:       input.OptionID,
		IdempotencyKey: input.IdempotencyKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionExpired):
			response.RenderErr(ctx, response.ErrSessionExpired(err))
		case errors.Is(err, service.ErrInvalidOption):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidOption))
		case errors.Is(err, service.ErrInvalidIdempotencyKey):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidIdempotencyKey))
		case errors.Is(err, service.ErrNotFound):
			response.RenderErr(ctx, response.ErrNotFound("menu item or option", "ID", input.ItemID))
		case errors.Is(err, service.ErrConflict):
			response.RenderErr(ctx, response.ErrConflict(errors.New("idempotency key already used for a different order")))
		default:
			err = fmt.Errorf("HandleCreateOrder -> h.orderSvc.CreateOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	if replayed {
		ctx.JSON(http.StatusOK, order)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGetOrderStatus godoc
// @Summary      Poll the status of an order placed from the scanned seat
// @Tags         diner
// @Produce      json
// @Param        orderID  path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /orders/{orderID}/status [get]
func (h *DinerHandler) HandleGetOrderStatus(ctx *gin.Context) {
	uid, respErr := parseUUIDParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.orderSvc.GetSeatOrder(ctx.Request.Context(), h.sessionID(ctx), uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionExpired):
			response.RenderErr(ctx, response.ErrSessionExpired(err))
		case errors.Is(err, service.ErrNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", uid))
		default:
			err = fmt.Errorf("HandleGetOrderStatus -> h.orderSvc.GetSeatOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// sessionID reads the seat session from the cookie, falling back to the header.
// Anything that is not a UUID is treated as no session.
func (h *DinerHandler) sessionID(ctx *gin.Context) string {
	id, err := ctx.Cookie(h.conf.CookieName)
	if err != nil || id == "" {
		id = strings.TrimSpace(ctx.GetHeader(SeatSessionHeader))
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return ""
	}

	return parsed.String()
}

func (h *DinerHandler) setSessionCookie(ctx *gin.Context, sessionID string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(h.conf.CookieName, sessionID, int(h.conf.TTL/time.Second), "/", "", h.conf.CookieSecure, true)
}
