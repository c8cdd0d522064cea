package http

import (
	"net/http"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	BusinessDay(w http.ResponseWriter, r *http.Request)
	Holidays(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendar *calendar.Calendar
}

type businessDayResponse struct {
	Date        string `json:"date"`
	BusinessDay bool   `json:"business_day"`
	Reason      string `json:"reason,omitempty"`
}

// BusinessDay implements CalendarHandler.
func (h *CalendarHandlerImpl) BusinessDay(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, businessDayResponse{
		Date:        calendar.FormatDate(date),
		BusinessDay: h.calendar.IsBusinessDay(date),
		Reason:      h.calendar.NonBusinessReason(date),
	})
}

// Holidays implements CalendarHandler.
func (h *CalendarHandlerImpl) Holidays(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.calendar.Table())
}

func NewCalendarHandler(cal *calendar.Calendar) CalendarHandler {
	return &CalendarHandlerImpl{calendar: cal}
}
