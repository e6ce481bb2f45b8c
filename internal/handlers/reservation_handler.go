package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/httpresp"
	ucReservation "github.com/BruksfildServices01/phone-reserve/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	availability *ucReservation.GetAvailability
	create       *ucReservation.CreateReservation
	transition   *ucReservation.TransitionReservation
	list         *ucReservation.ListReservations
}

func NewReservationHandler(
	availability *ucReservation.GetAvailability,
	create *ucReservation.CreateReservation,
	transition *ucReservation.TransitionReservation,
	list *ucReservation.ListReservations,
) *ReservationHandler {
	return &ReservationHandler{
		availability: availability,
		create:       create,
		transition:   transition,
		list:         list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	StoreID       uint   `json:"store_id" binding:"required"`
	ProductID     uint   `json:"product_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required,hhmm"`
	CustomerName  string `json:"customer_name" binding:"required,max=100"`
	CustomerPhone string `json:"customer_phone" binding:"required,krphone"`
	Memo          string `json:"memo" binding:"max=255"`
}

type TransitionRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ReservationHandler) Availability(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), ucReservation.GetAvailabilityInput{
		StoreID: storeID,
		Date:    c.Query("date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CONSUMER
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	session := auth.MustSession(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		StoreID:       req.StoreID,
		ProductID:     req.ProductID,
		UserID:        session.UserID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Memo:          req.Memo,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	session := auth.MustSession(c)

	items, err := h.list.ForUser(c.Request.Context(), session.UserID, c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

// Cancel cancels a pending reservation outright or, once confirmed, asks
// the store to approve the cancellation.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.apply(c, domain.ActionCancel)
}

// ======================================================
// SELLER / ADMIN
// ======================================================

func (h *ReservationHandler) ListStore(c *gin.Context) {
	session := auth.MustSession(c)

	items, err := h.list.ForStore(c.Request.Context(), session.StoreID, c.Query("date"), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

// Transition runs the action named in the path, e.g.
// POST /seller/reservations/12/approve-cancel.
func (h *ReservationHandler) Transition(c *gin.Context) {
	action, ok := domain.ParseAction(c.Param("action"))
	if !ok {
		httperr.BadRequest(c, "invalid_action", "지원하지 않는 작업입니다.")
		return
	}
	h.apply(c, action)
}

func (h *ReservationHandler) apply(c *gin.Context, action domain.Action) {
	session := auth.MustSession(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	res, err := h.transition.Execute(c.Request.Context(), ucReservation.TransitionInput{
		ReservationID: id,
		Session:       session,
		Action:        action,
		Reason:        req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}
