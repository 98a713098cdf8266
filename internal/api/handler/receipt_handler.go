package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// ReceiptHandler exposes the notification audit trail to the back office.
type ReceiptHandler struct {
	receipts ports.ReceiptRepository
}

func NewReceiptHandler(receipts ports.ReceiptRepository) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

type receiptResponse struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	PublishedAt    time.Time `json:"published_at"`
	SentAt         time.Time `json:"sent_at"`
	RecipientCount int       `json:"recipient_count"`
	Recipients     []string  `json:"recipients"`
	Delivered      int       `json:"delivered"`
	Failed         int       `json:"failed"`
}

func toReceiptResponse(r *domain.NotificationReceipt) receiptResponse {
	return receiptResponse{
		ID:             r.ID,
		PostID:         r.PostID,
		Title:          r.Title,
		Type:           string(r.Type),
		PublishedAt:    r.PublishedAt,
		SentAt:         r.SentAt,
		RecipientCount: r.RecipientCount,
		Recipients:     r.Recipients,
		Delivered:      r.Delivered,
		Failed:         r.Failed,
	}
}

// List handles GET /v1/admin/receipts, newest first.
//
// @Summary      List notification receipts
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum receipts to return"
// @Success      200    {array}   receiptResponse
// @Router       /v1/admin/receipts [get]
func (h *ReceiptHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	receipts, err := h.receipts.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	out := make([]receiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toReceiptResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}
