package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gracechapel/content-api/internal/api/metrics"
	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// SubscriberHandler handles the public opt-in endpoints and the back-office
// subscriber listing.
type SubscriberHandler struct {
	subscribers ports.SubscriberService
}

func NewSubscriberHandler(subscribers ports.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{subscribers: subscribers}
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type subscriberResponse struct {
	Email          string     `json:"email"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

func toSubscriberResponse(s *domain.Subscriber) subscriberResponse {
	return subscriberResponse{
		Email:          s.Email,
		IsActive:       s.IsActive,
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
	}
}

// Subscribe handles POST /v1/subscribers.
//
// @Summary      Subscribe to publication notices
// @Tags         subscribers
// @Accept       json
// @Produce      json
// @Param        body  body      subscribeRequest  true  "Email address"
// @Success      201   {object}  subscriberResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/subscribers [post]
func (h *SubscriberHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sub, err := h.subscribers.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	metrics.SubscriberChangesTotal.WithLabelValues("subscribe").Inc()
	return c.JSON(http.StatusCreated, toSubscriberResponse(sub))
}

// Unsubscribe handles POST /v1/subscribers/unsubscribe.
//
// @Summary      Unsubscribe from publication notices
// @Tags         subscribers
// @Accept       json
// @Param        body  body  subscribeRequest  true  "Email address"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/subscribers/unsubscribe [post]
func (h *SubscriberHandler) Unsubscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.subscribers.Unsubscribe(c.Request().Context(), req.Email); err != nil {
		return err
	}
	metrics.SubscriberChangesTotal.WithLabelValues("unsubscribe").Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListActive handles GET /v1/admin/subscribers.
//
// @Summary      List active subscribers
// @Tags         subscribers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  subscriberResponse
// @Router       /v1/admin/subscribers [get]
func (h *SubscriberHandler) ListActive(c echo.Context) error {
	subs, err := h.subscribers.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]subscriberResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubscriberResponse(s))
	}
	return c.JSON(http.StatusOK, out)
}
