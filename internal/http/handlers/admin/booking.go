package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bcexpress/tracking-api/internal/http/response"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListBookings returns pending bookings visible to the caller.
func (h *Handler) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	bookings, total, err := h.BookingService.ListPending(c.Request.Context(), bookingScope(c), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.booking_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, bookings, pagination)
}

// GetBookingByAWB returns the pending booking for an AWB number.
func (h *Handler) GetBookingByAWB(c *gin.Context) {
	awbNo := strings.TrimSpace(c.Param("awb"))
	if awbNo == "" {
		respondError(c, response.CodeBadRequest, "error.awb_required", nil)
		return
	}

	booking, err := h.BookingService.FindPendingByAWB(c.Request.Context(), awbNo, bookingScope(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired):
			respondError(c, response.CodeBadRequest, "error.awb_required", nil)
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.booking_fetch_failed", err)
		}
		return
	}

	response.Success(c, booking)
}

// VerifyBooking accepts a pending booking and mirrors it into the
// branch manifest. Amounts bind as strings or numbers; fields left out
// of the request keep the figures the agent entered.
func (h *Handler) VerifyBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var input service.VerifyBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input.VerifiedBy = getUsername(c)

	booking, err := h.BookingService.Verify(c.Request.Context(), bookingID, input, bookingScope(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		case errors.Is(err, service.ErrBookingAlreadyResolved):
			respondError(c, response.CodeConflict, "error.booking_resolved", nil)
		case errors.Is(err, service.ErrManifestInsertFailed):
			respondError(c, response.CodeInternal, "error.manifest_insert_failed", err)
		default:
			respondError(c, response.CodeInternal, "error.booking_verify_failed", err)
		}
		return
	}

	response.Success(c, booking)
}

// RejectBookingRequest carries the rejection reason.
type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

// RejectBooking declines a pending booking with a mandatory reason.
func (h *Handler) RejectBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	booking, err := h.BookingService.Reject(c.Request.Context(), bookingID, req.Reason, bookingScope(c), getUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRejectReasonRequired):
			respondError(c, response.CodeBadRequest, "error.reject_reason_required", nil)
		case errors.Is(err, service.ErrBookingNotFound):
			respondError(c, response.CodeNotFound, "error.booking_not_found", nil)
		case errors.Is(err, service.ErrBookingAlreadyResolved):
			respondError(c, response.CodeConflict, "error.booking_resolved", nil)
		default:
			respondError(c, response.CodeInternal, "error.booking_reject_failed", err)
		}
		return
	}

	response.Success(c, booking)
}

func parseBookingID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.booking_id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
