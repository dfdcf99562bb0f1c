package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/resvio/bot-platform/internal/bookings"
	"github.com/resvio/bot-platform/internal/schedule"
	"github.com/resvio/bot-platform/internal/session"
)

// maxOfferedDates bounds the date picker.
const maxOfferedDates = 5

// maxOfferedSlots bounds the time picker to the best-scoring candidates.
const maxOfferedSlots = 6

type bookingFlow struct {
	dir Directory
}

// parseChoice reads a numeric menu selection. Returns false for anything
// that is not a plain non-negative integer.
func parseChoice(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// displayDate renders a stored YYYY-MM-DD date for prompts.
func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan (Mon)")
}

func (f *bookingFlow) menuMessage(req Request) Message {
	rows := make([]ListRow, 0, len(req.Tenant.Services)+1)
	for i, svc := range req.Tenant.Services {
		desc := svc.PriceText
		if svc.DurationMinutes > 0 {
			if desc != "" {
				desc += " · "
			}
			desc += fmt.Sprintf("%d min", svc.DurationMinutes)
		}
		rows = append(rows, ListRow{
			ID:          fmt.Sprintf("%d", i+1),
			Title:       svc.Name,
			Description: desc,
		})
	}
	rows = append(rows, ListRow{
		ID:    fmt.Sprintf("%d", len(req.Tenant.Services)+1),
		Title: T(req.Lang, msgMenuMyAppts),
	})
	return List(ListMessage{
		Body: T(req.Lang, msgMenuHeader, req.Tenant.Name),
		Rows: rows,
	})
}

// menu is the booking flow entry point. A selection between 1 and the number
// of services starts a new booking; the option after that lists existing
// appointments; 0 or anything else re-prompts.
func (f *bookingFlow) menu(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if !ok || choice == 0 {
		msgs := []Message{f.menuMessage(req)}
		if req.Text != "" {
			msgs = []Message{Text(T(req.Lang, msgInvalidOption)), f.menuMessage(req)}
		}
		return stay(req, msgs...), nil
	}

	data := req.Session.Data.Clone()
	if choice >= 1 && choice <= len(req.Tenant.Services) {
		svc := req.Tenant.Services[choice-1]
		duration := svc.DurationMinutes
		if duration <= 0 {
			duration = req.Tenant.SlotStepMinutes
		}
		data.Booking = &session.BookingData{
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			DurationMinutes: duration,
		}
		return Result{NextStep: StepBookingSelectDateList, Data: data, Redispatch: true}, nil
	}
	if choice == len(req.Tenant.Services)+1 {
		data.Booking = &session.BookingData{}
		return Result{NextStep: StepBookingListAppts, Data: data, Redispatch: true}, nil
	}
	return stay(req, Text(T(req.Lang, msgInvalidOption)), f.menuMessage(req)), nil
}

func dateListMessage(req Request, dates []string, serviceName string) Message {
	rows := make([]ListRow, 0, len(dates))
	for i, d := range dates {
		rows = append(rows, ListRow{ID: fmt.Sprintf("%d", i+1), Title: displayDate(d)})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgChooseDate, serviceName) + "\n" + T(req.Lang, msgBackOption),
		Rows: rows,
	})
}

// selectDate presents business-open dates and records the chosen one.
func (f *bookingFlow) selectDate(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Booking == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}

	if req.Text == "" {
		dates := req.Tenant.OpenDates(req.Now, maxOfferedDates)
		if len(dates) == 0 {
			data.Booking = nil
			return Result{NextStep: StepMenu, Data: data, Messages: []Message{Text(T(req.Lang, msgNoDates))}}, nil
		}
		data.Booking.OfferedDates = dates
		return Result{
			NextStep: StepBookingSelectDateList,
			Data:     data,
			Messages: []Message{dateListMessage(req, dates, data.Booking.ServiceName)},
		}, nil
	}

	choice, ok := parseChoice(req.Text)
	if ok && choice == 0 {
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	if ok && choice >= 1 && choice <= len(data.Booking.OfferedDates) {
		data.Booking.Date = data.Booking.OfferedDates[choice-1]
		return Result{NextStep: StepBookingSelectTime, Data: data, Redispatch: true}, nil
	}
	return stay(req,
		Text(T(req.Lang, msgInvalidOption)),
		dateListMessage(req, data.Booking.OfferedDates, data.Booking.ServiceName),
	), nil
}

func timeListMessage(req Request, date string, times []string) Message {
	rows := make([]ListRow, 0, len(times))
	for i, clock := range times {
		rows = append(rows, ListRow{ID: fmt.Sprintf("%d", i+1), Title: clock})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgChooseTime, displayDate(date)) + "\n" + T(req.Lang, msgBackOption),
		Rows: rows,
	})
}

// occupiedSlots converts a day's blocking bookings to scorer input. When the
// session is rescheduling, the appointment being moved does not block.
func occupiedSlots(existing []bookings.Booking, skipID string) []schedule.Booking {
	var out []schedule.Booking
	for _, b := range existing {
		if !b.Occupies() || b.ID == skipID {
			continue
		}
		start, err := schedule.ParseClock(b.Time)
		if err != nil {
			continue
		}
		out = append(out, schedule.Booking{StartMinutes: start, DurationMinutes: b.DurationMinutes})
	}
	return out
}

// selectTime computes candidate slots for the chosen date, ranks them with
// the slot scorer and offers the best ones. Reschedules complete here,
// reusing the stored customer profile.
func (f *bookingFlow) selectTime(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Booking == nil || data.Booking.Date == "" {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	bk := data.Booking

	day, err := time.Parse("2006-01-02", bk.Date)
	if err != nil {
		bk.Date = ""
		return Result{NextStep: StepBookingSelectDateList, Data: data, Redispatch: true}, nil
	}
	hours := req.Tenant.Hours.ForWeekday(day.Weekday())
	if hours == nil {
		bk.Date = ""
		return Result{
			NextStep:   StepBookingSelectDateList,
			Data:       data,
			Messages:   []Message{Text(T(req.Lang, msgNoTimes))},
			Redispatch: true,
		}, nil
	}

	if req.Text == "" {
		openMin, err := schedule.ParseClock(hours.Open)
		if err != nil {
			return Result{}, fmt.Errorf("flow: tenant %s opening time: %w", req.Tenant.TenantID, err)
		}
		closeMin, err := schedule.ParseClock(hours.Close)
		if err != nil {
			return Result{}, fmt.Errorf("flow: tenant %s closing time: %w", req.Tenant.TenantID, err)
		}

		existing, err := f.dir.ListByDate(ctx, req.Tenant.TenantID, bk.Date)
		if err != nil {
			return Result{}, fmt.Errorf("flow: list bookings: %w", err)
		}
		skipID := ""
		if bk.Reschedule && bk.SelectedAppointment != nil {
			skipID = bk.SelectedAppointment.BookingID
		}
		occupied := occupiedSlots(existing, skipID)

		step := req.Tenant.SlotStepMinutes
		candidates := schedule.Candidates(openMin, closeMin, step, bk.DurationMinutes, occupied)
		ranked := schedule.Rank(candidates, occupied, step, openMin, closeMin, maxOfferedSlots)
		if len(ranked) == 0 {
			bk.Date = ""
			return Result{
				NextStep:   StepBookingSelectDateList,
				Data:       data,
				Messages:   []Message{Text(T(req.Lang, msgNoTimes))},
				Redispatch: true,
			}, nil
		}

		times := make([]string, 0, len(ranked))
		for _, s := range ranked {
			times = append(times, schedule.FormatClock(s.StartMinutes))
		}
		bk.OfferedTimes = times
		return Result{
			NextStep: StepBookingSelectTime,
			Data:     data,
			Messages: []Message{timeListMessage(req, bk.Date, times)},
		}, nil
	}

	choice, ok := parseChoice(req.Text)
	if ok && choice == 0 {
		bk.Date = ""
		return Result{NextStep: StepBookingSelectDateList, Data: data, Redispatch: true}, nil
	}
	if !ok || choice < 1 || choice > len(bk.OfferedTimes) {
		return stay(req,
			Text(T(req.Lang, msgInvalidOption)),
			timeListMessage(req, bk.Date, bk.OfferedTimes),
		), nil
	}

	bk.Time = bk.OfferedTimes[choice-1]

	if bk.Reschedule && bk.SelectedAppointment != nil {
		if err := f.dir.Reschedule(ctx, req.Tenant.TenantID, bk.SelectedAppointment.BookingID, bk.Date, bk.Time); err != nil {
			return Result{}, fmt.Errorf("flow: reschedule: %w", err)
		}
		done := Text(T(req.Lang, msgRescheduled, bk.ServiceName, displayDate(bk.Date), bk.Time))
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Messages: []Message{done}}, nil
	}
	return Result{NextStep: StepBookingEnterName, Data: data, Redispatch: true}, nil
}

// enterName asks for and validates the customer name: non-empty and at least
// two characters after trimming; failures re-prompt without advancing.
func (f *bookingFlow) enterName(ctx context.Context, req Request) (Result, error) {
	name := strings.TrimSpace(req.Text)
	if name == "" {
		return stay(req, Text(T(req.Lang, msgAskName))), nil
	}
	if len([]rune(name)) < 2 {
		return stay(req, Text(T(req.Lang, msgNameTooShort))), nil
	}
	data := req.Session.Data.Clone()
	data.Profile.CustomerName = name
	return Result{NextStep: StepBookingEnterNote, Data: data, Redispatch: true}, nil
}

// enterNote accepts an optional note. "0" means no note; any other text is
// stored verbatim. Always advances.
func (f *bookingFlow) enterNote(ctx context.Context, req Request) (Result, error) {
	if req.Text == "" {
		return stay(req, Text(T(req.Lang, msgAskNote))), nil
	}
	data := req.Session.Data.Clone()
	if data.Booking == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	note := strings.TrimSpace(req.Text)
	if note == "0" {
		note = ""
	}
	data.Booking.Note = note
	return Result{NextStep: StepBookingConfirm, Data: data, Redispatch: true}, nil
}

func (f *bookingFlow) summaryMessages(req Request, bk *session.BookingData) []Message {
	noteLine := ""
	if bk.Note != "" {
		noteLine = "\n" + bk.Note
	}
	return []Message{
		Text(T(req.Lang, msgConfirmSummary,
			bk.ServiceName, displayDate(bk.Date), bk.Time, req.Session.Data.Profile.CustomerName, noteLine)),
		Text(T(req.Lang, msgConfirmOptions)),
	}
}

// confirm shows the summary and commits the booking on "1".
func (f *bookingFlow) confirm(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Booking == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	bk := data.Booking

	if req.Text == "" {
		return stay(req, f.summaryMessages(req, bk)...), nil
	}

	choice, ok := parseChoice(req.Text)
	switch {
	case ok && choice == 1:
		created, err := f.dir.Create(ctx, bookings.Booking{
			TenantID:        req.Tenant.TenantID,
			CustomerName:    data.Profile.CustomerName,
			CustomerPhone:   req.Address,
			ServiceID:       bk.ServiceID,
			ServiceName:     bk.ServiceName,
			Date:            bk.Date,
			Time:            bk.Time,
			DurationMinutes: bk.DurationMinutes,
			Note:            bk.Note,
			Status:          bookings.StatusPending,
		})
		if err != nil {
			return Result{}, fmt.Errorf("flow: create booking: %w", err)
		}
		done := Text(T(req.Lang, msgBookingCreated, created.ServiceName, displayDate(created.Date), created.Time))
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Messages: []Message{done}}, nil
	case ok && choice == 0:
		data.Booking = nil
		return Result{
			NextStep:   StepMenu,
			Data:       data,
			Messages:   []Message{Text(T(req.Lang, msgBookingAborted))},
			Redispatch: true,
		}, nil
	default:
		return stay(req, append([]Message{Text(T(req.Lang, msgInvalidOption))}, f.summaryMessages(req, bk)...)...), nil
	}
}

func apptListMessage(req Request, appts []session.Appointment) Message {
	rows := make([]ListRow, 0, len(appts))
	for i, a := range appts {
		rows = append(rows, ListRow{
			ID:    fmt.Sprintf("%d", i+1),
			Title: fmt.Sprintf("%s · %s %s", a.ServiceName, displayDate(a.Date), a.Time),
		})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgApptsHeader) + "\n" + T(req.Lang, msgBackOption),
		Rows: rows,
	})
}

// listAppointments shows the customer's upcoming bookings for reschedule or
// cancellation.
func (f *bookingFlow) listAppointments(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Booking == nil {
		data.Booking = &session.BookingData{}
	}

	if req.Text == "" {
		today := req.Now.In(req.Tenant.Location()).Format("2006-01-02")
		existing, err := f.dir.ListByCustomer(ctx, req.Tenant.TenantID, req.Address, today)
		if err != nil {
			return Result{}, fmt.Errorf("flow: list appointments: %w", err)
		}
		var appts []session.Appointment
		for _, b := range existing {
			if !b.Occupies() {
				continue
			}
			appts = append(appts, session.Appointment{
				BookingID:       b.ID,
				ServiceID:       b.ServiceID,
				ServiceName:     b.ServiceName,
				Date:            b.Date,
				Time:            b.Time,
				DurationMinutes: b.DurationMinutes,
			})
		}
		if len(appts) == 0 {
			data.Booking = nil
			return Result{
				NextStep:   StepMenu,
				Data:       data,
				Messages:   []Message{Text(T(req.Lang, msgNoAppts))},
				Redispatch: true,
			}, nil
		}
		data.Booking.OfferedAppointments = appts
		return Result{
			NextStep: StepBookingListAppts,
			Data:     data,
			Messages: []Message{apptListMessage(req, appts)},
		}, nil
	}

	choice, ok := parseChoice(req.Text)
	if ok && choice == 0 {
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	if ok && choice >= 1 && choice <= len(data.Booking.OfferedAppointments) {
		appt := data.Booking.OfferedAppointments[choice-1]
		data.Booking.SelectedAppointment = &appt
		return Result{NextStep: StepBookingChangeType, Data: data, Redispatch: true}, nil
	}
	return stay(req,
		Text(T(req.Lang, msgInvalidOption)),
		apptListMessage(req, data.Booking.OfferedAppointments),
	), nil
}

// chooseChangeType branches the reschedule sub-flow on a single digit:
// 0 back to menu, 1 pick a new date, 2 keep the date and pick a new time,
// 3 cancel the appointment. Anything else re-prompts.
func (f *bookingFlow) chooseChangeType(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Booking == nil || data.Booking.SelectedAppointment == nil {
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	appt := data.Booking.SelectedAppointment
	prompt := Text(T(req.Lang, msgChangeTypePrompt, appt.ServiceName, displayDate(appt.Date), appt.Time))

	if req.Text == "" {
		return stay(req, prompt), nil
	}

	seed := func() {
		data.Booking.Reschedule = true
		data.Booking.ServiceID = appt.ServiceID
		data.Booking.ServiceName = appt.ServiceName
		data.Booking.DurationMinutes = appt.DurationMinutes
		if data.Booking.DurationMinutes <= 0 {
			data.Booking.DurationMinutes = req.Tenant.SlotStepMinutes
		}
	}

	switch strings.TrimSpace(req.Text) {
	case "0":
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	case "1":
		seed()
		data.Booking.Date = ""
		return Result{NextStep: StepBookingSelectDateList, Data: data, Redispatch: true}, nil
	case "2":
		seed()
		data.Booking.Date = appt.Date
		return Result{NextStep: StepBookingSelectTime, Data: data, Redispatch: true}, nil
	case "3":
		if err := f.dir.Cancel(ctx, req.Tenant.TenantID, appt.BookingID); err != nil {
			return Result{}, fmt.Errorf("flow: cancel booking: %w", err)
		}
		done := Text(T(req.Lang, msgApptCancelled, appt.ServiceName, displayDate(appt.Date)))
		data.Booking = nil
		return Result{NextStep: StepMenu, Data: data, Messages: []Message{done}, Redispatch: true}, nil
	default:
		return stay(req, Text(T(req.Lang, msgInvalidOption)), prompt), nil
	}
}
