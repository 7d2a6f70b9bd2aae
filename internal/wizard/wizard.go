// Package wizard реализует пошаговую запись к мастеру: профиль, мотив, календарь.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// Wizard состояние одной сессии записи
// Не предназначен для одновременного использования из нескольких горутин
type Wizard struct {
	providerID uuid.UUID

	catalog      Catalog
	creator      BookingCreator
	timeProvider TimeProvider
	logger       Logger
	policy       domain.BlockingPolicy

	// Данные мастера, загруженные через Load
	loaded    bool
	windows   []domain.WeeklyAvailabilityWindow
	overrides domain.EligibilityOverrides
	absences  []domain.Absence
	bookings  []domain.Booking
	services  []domain.Service
	settings  *domain.ProviderSettings

	// Даты, на которые сервис уже отказал из-за дневного лимита
	fullDays map[string]struct{}

	step    Step
	motif   Motif
	date    *time.Time
	slot    types.TimeString
	contact Contact
	consent bool
	result  *BookingResult
}

// Option настройка мастера записи
type Option func(*Wizard)

// WithTimeProvider подменяет часы
func WithTimeProvider(tp TimeProvider) Option {
	return func(w *Wizard) {
		w.timeProvider = tp
	}
}

// WithBlockingPolicy задаёт, какие записи занимают время
func WithBlockingPolicy(p domain.BlockingPolicy) Option {
	return func(w *Wizard) {
		w.policy = p
	}
}

// New создает мастер записи на шаге профиля
func New(providerID uuid.UUID, catalog Catalog, creator BookingCreator, logger Logger, opts ...Option) *Wizard {
	w := &Wizard{
		providerID:   providerID,
		catalog:      catalog,
		creator:      creator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		policy:       domain.BlockPendingAndAccepted,
		step:         StepProfile,
		motif:        noMotif(),
		fullDays:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load загружает расписание, ограничения, отсутствия, записи, услуги и настройки мастера
// При ошибке слоты не вычисляются, пока загрузка не пройдёт успешно
func (w *Wizard) Load(ctx context.Context) error {
	w.loaded = false

	windows, err := w.catalog.GetAvailability(ctx, w.providerID)
	if err != nil {
		return w.collaboratorErr("availability", err)
	}
	overrides, err := w.catalog.GetEligibilityOverrides(ctx, w.providerID)
	if err != nil {
		return w.collaboratorErr("eligibility", err)
	}
	absences, err := w.catalog.GetAbsences(ctx, w.providerID)
	if err != nil {
		return w.collaboratorErr("absences", err)
	}
	services, err := w.catalog.GetServices(ctx, w.providerID)
	if err != nil {
		return w.collaboratorErr("services", err)
	}
	if err := w.refresh(ctx); err != nil {
		return err
	}

	w.fullDays = make(map[string]struct{})
	w.windows = windows
	w.overrides = overrides
	w.absences = absences
	w.services = services
	w.loaded = true

	w.logger.Info("Wizard: provider=%s loaded windows=%d services=%d bookings=%d absences=%d",
		w.providerID, len(windows), len(services), len(w.bookings), len(absences))
	return nil
}

// refresh перечитывает записи и настройки, которые меняются во время сессии
func (w *Wizard) refresh(ctx context.Context) error {
	bookings, err := w.catalog.GetBookings(ctx, w.providerID)
	if err != nil {
		return w.collaboratorErr("bookings", err)
	}
	settings, err := w.catalog.GetSettings(ctx, w.providerID)
	if err != nil {
		return w.collaboratorErr("settings", err)
	}
	if settings == nil {
		settings = domain.DefaultProviderSettings(w.providerID)
	}

	w.bookings = bookings
	w.settings = settings
	return nil
}

func (w *Wizard) collaboratorErr(what string, err error) error {
	w.logger.Error("Wizard: provider=%s failed to load %s: %v", w.providerID, what, err)
	return fmt.Errorf("%w: load %s: %v", ErrCollaborator, what, err)
}

// Step текущий шаг
func (w *Wizard) Step() Step {
	return w.step
}

// Motif текущий мотив
func (w *Wizard) Motif() Motif {
	return w.motif
}

// SelectedDate выбранная дата
func (w *Wizard) SelectedDate() (time.Time, bool) {
	if w.date == nil {
		return time.Time{}, false
	}
	return *w.date, true
}

// SelectedSlot выбранное время
func (w *Wizard) SelectedSlot() (types.TimeString, bool) {
	return w.slot, !w.slot.IsZero()
}

// Contact контактные данные формы
func (w *Wizard) Contact() Contact {
	return w.contact
}

// Consent согласие с условиями
func (w *Wizard) Consent() bool {
	return w.consent
}

// Result созданная запись после успешной отправки
func (w *Wizard) Result() *BookingResult {
	return w.result
}

// Services активные услуги мастера
func (w *Wizard) Services() []domain.Service {
	out := make([]domain.Service, 0, len(w.services))
	for _, s := range w.services {
		if s.Active && s.ProviderID == w.providerID {
			out = append(out, s)
		}
	}
	return out
}

// Schedule расписание мастера для вычисления доступности
func (w *Wizard) Schedule() availability.Schedule {
	return availability.Schedule{
		Windows:   w.windows,
		Overrides: w.overrides,
		Absences:  w.absences,
	}
}

// BrowseServices переходит к выбору мотива со сброшенным выбором
func (w *Wizard) BrowseServices() error {
	if w.step == StepSubmitted {
		return fmt.Errorf("%w: booking already submitted", ErrInvalidTransition)
	}
	w.motif = noMotif()
	w.step = StepMotif
	return nil
}

// StartFromService переходит к выбору мотива с уже выбранной услугой
// Сразу в календарь не попадает: клиент подтверждает мотив
func (w *Wizard) StartFromService(svc domain.Service) error {
	if w.step == StepSubmitted {
		return fmt.Errorf("%w: booking already submitted", ErrInvalidTransition)
	}
	if err := w.validateService(svc); err != nil {
		return err
	}
	w.motif = serviceMotif(svc)
	w.step = StepMotif
	return nil
}

// SelectService выбирает услугу, отключая свой мотив
func (w *Wizard) SelectService(svc domain.Service) error {
	if err := w.requireStep(StepMotif); err != nil {
		return err
	}
	if err := w.validateService(svc); err != nil {
		return err
	}
	w.motif = serviceMotif(svc)
	return nil
}

// EnableCustomMotif включает ввод своего мотива, снимая выбор услуги
func (w *Wizard) EnableCustomMotif() error {
	if err := w.requireStep(StepMotif); err != nil {
		return err
	}
	if w.motif.Kind() != MotifCustom {
		w.motif = customMotif("")
	}
	return nil
}

// DisableCustomMotif выключает свой мотив
func (w *Wizard) DisableCustomMotif() error {
	if err := w.requireStep(StepMotif); err != nil {
		return err
	}
	if w.motif.Kind() == MotifCustom {
		w.motif = noMotif()
	}
	return nil
}

// SetCustomMotif задаёт текст своего мотива
func (w *Wizard) SetCustomMotif(text string) error {
	if err := w.requireStep(StepMotif); err != nil {
		return err
	}
	if w.motif.Kind() != MotifCustom {
		return fmt.Errorf("%w: custom motif is not enabled", ErrInvalidTransition)
	}
	w.motif = customMotif(text)
	return nil
}

// ContinueToCalendar переходит к календарю
// Контакты предзаполняются из профиля, только пока клиент ничего не ввёл
// Выбранные дата и время сбрасываются
func (w *Wizard) ContinueToCalendar(profile *UserProfile) error {
	if err := w.requireStep(StepMotif); err != nil {
		return err
	}
	if !w.motif.IsComplete() {
		return fmt.Errorf("%w: select a service or describe the motif", ErrValidation)
	}

	if w.contact == (Contact{}) {
		w.contact = contactFromProfile(profile)
	}
	w.date = nil
	w.slot = ""
	w.step = StepCalendar
	return nil
}

// BackToMotif возвращается к выбору мотива, сохраняя выбор
func (w *Wizard) BackToMotif() error {
	if err := w.requireStep(StepCalendar); err != nil {
		return err
	}
	w.step = StepMotif
	return nil
}

// Reset сбрасывает сессию на шаг профиля
func (w *Wizard) Reset() {
	w.step = StepProfile
	w.motif = noMotif()
	w.date = nil
	w.slot = ""
	w.contact = Contact{}
	w.consent = false
	w.result = nil
}

// SelectDate выбирает дату, выбранное время сбрасывается
func (w *Wizard) SelectDate(date time.Time) error {
	if err := w.requireStep(StepCalendar); err != nil {
		return err
	}
	if !w.loaded {
		return fmt.Errorf("%w: provider data is not loaded", ErrCollaborator)
	}

	day := domain.DateOnly(date)
	reason := availability.CheckDate(day, w.today(), w.serviceID(), w.Schedule())
	if reason == availability.ReasonNone {
		reason = w.settingsReason(day)
	}
	if reason != availability.ReasonNone {
		return fmt.Errorf("%w: date %s is not bookable (%s)", ErrValidation, day.Format(domain.DateFormat), reason)
	}

	w.date = &day
	w.slot = ""
	return nil
}

// Slots слоты на выбранную дату с учётом занятости
func (w *Wizard) Slots() ([]domain.Slot, error) {
	if err := w.requireStep(StepCalendar); err != nil {
		return nil, err
	}
	if !w.loaded {
		return nil, fmt.Errorf("%w: provider data is not loaded", ErrCollaborator)
	}
	if w.date == nil {
		return nil, fmt.Errorf("%w: date is not selected", ErrValidation)
	}

	bookings := availability.FilterBookingsForDate(w.bookings, *w.date, w.policy)
	slots := availability.DaySlots(*w.date, w.today(), w.serviceID(), w.motif.DurationMinutes(), w.Schedule(), bookings)
	if w.settingsReason(*w.date) != availability.ReasonNone {
		slots = availability.MarkUnavailable(slots)
	}
	return slots, nil
}

// Month доступность дней месяца для текущего мотива с учётом настроек мастера
func (w *Wizard) Month(year int, month time.Month) ([]availability.CalendarDay, error) {
	if !w.loaded {
		return nil, fmt.Errorf("%w: provider data is not loaded", ErrCollaborator)
	}

	days := availability.MonthAvailability(year, month, w.today(), w.serviceID(), w.Schedule())
	for i := range days {
		if !days[i].Bookable {
			continue
		}
		if reason := w.settingsReason(days[i].Date); reason != availability.ReasonNone {
			days[i].Bookable = false
			days[i].Reason = reason
		}
	}
	return days, nil
}

// settingsReason проверяет горизонт записи и дневной лимит мастера
func (w *Wizard) settingsReason(day time.Time) availability.Reason {
	if w.settings.IsBeyondHorizon(day, w.today()) {
		return availability.ReasonBeyondHorizon
	}
	if _, full := w.fullDays[day.Format(domain.DateFormat)]; full {
		return availability.ReasonDayFull
	}
	if w.settings.IsDayFull(len(availability.FilterBookingsForDate(w.bookings, day, w.policy))) {
		return availability.ReasonDayFull
	}
	return availability.ReasonNone
}

// SelectSlot выбирает время, оно должно быть среди свободных слотов
func (w *Wizard) SelectSlot(at types.TimeString) error {
	slots, err := w.Slots()
	if err != nil {
		return err
	}
	for _, s := range slots {
		if s.Time == at {
			if !s.Available {
				return fmt.Errorf("%w: slot %s is taken", ErrValidation, at)
			}
			w.slot = at
			return nil
		}
	}
	return fmt.Errorf("%w: slot %s is not offered", ErrValidation, at)
}

// UpdateContact заменяет контактные данные
func (w *Wizard) UpdateContact(c Contact) error {
	if err := w.requireStep(StepCalendar); err != nil {
		return err
	}
	w.contact = c
	return nil
}

// SetConsent отмечает согласие с условиями
func (w *Wizard) SetConsent(accepted bool) error {
	if err := w.requireStep(StepCalendar); err != nil {
		return err
	}
	w.consent = accepted
	return nil
}

// CanSubmit проверяет, заполнено ли всё для отправки
func (w *Wizard) CanSubmit() bool {
	return w.step == StepCalendar &&
		w.date != nil &&
		!w.slot.IsZero() &&
		strings.TrimSpace(w.contact.Name) != "" &&
		strings.TrimSpace(w.contact.Phone) != "" &&
		w.consent
}

// BuildRequest собирает запрос на создание записи из текущего состояния
func (w *Wizard) BuildRequest() (BookingRequest, error) {
	if !w.CanSubmit() {
		return BookingRequest{}, fmt.Errorf("%w: date, time, name, phone and consent are required", ErrValidation)
	}

	req := BookingRequest{
		ProviderID:      w.providerID,
		Date:            w.date.Format(domain.DateFormat),
		Time:            w.slot,
		DurationMinutes: w.motif.DurationMinutes(),
		Address:         strings.TrimSpace(w.contact.Address),
		Notes:           buildNotes(w.motif, w.contact),
	}
	if req.Address == "" {
		req.Address = domain.DefaultBookingAddress
	}
	if svc, ok := w.motif.Service(); ok {
		id := svc.ID
		req.ServiceID = &id
		req.PriceHT = svc.PriceHT
		req.PriceTTC = svc.PriceTTC
	}
	return req, nil
}

// Submit отправляет запись
// При конфликте остаётся в календаре, сбрасывает время и перечитывает записи
// Если дневной лимит исчерпан, дата тоже сбрасывается и больше не предлагается
// При прочих ошибках состояние не меняется
func (w *Wizard) Submit(ctx context.Context) (*BookingResult, error) {
	if err := w.requireStep(StepCalendar); err != nil {
		return nil, err
	}
	req, err := w.BuildRequest()
	if err != nil {
		return nil, err
	}

	w.logger.Info("Wizard: submit provider=%s date=%s time=%s duration=%d",
		req.ProviderID, req.Date, req.Time, req.DurationMinutes)

	result, err := w.creator.CreateBooking(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDayFull):
			w.logger.Warn("Wizard: provider=%s accepts no more bookings on %s", w.providerID, req.Date)
			w.fullDays[req.Date] = struct{}{}
			w.date = nil
			w.slot = ""
			return nil, w.refreshAfter(ctx, err)
		case errors.Is(err, ErrConflict):
			w.logger.Warn("Wizard: slot %s %s taken concurrently", req.Date, req.Time)
			w.slot = ""
			return nil, w.refreshAfter(ctx, err)
		case errors.Is(err, ErrValidation):
			w.logger.Warn("Wizard: booking rejected: %v", err)
			return nil, err
		default:
			w.logger.Error("Wizard: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: create booking: %v", ErrCollaborator, err)
		}
	}

	// Сессия закрыта: данные формы больше не нужны
	w.Reset()
	w.step = StepSubmitted
	w.result = result
	w.logger.Info("Wizard: booking id=%s created with status=%s", result.ID, result.Status)
	return result, nil
}

// refreshAfter перечитывает данные после отказа сервиса
// Если перечитать не удалось, слоты не вычисляются до следующего Load
func (w *Wizard) refreshAfter(ctx context.Context, cause error) error {
	if err := w.refresh(ctx); err != nil {
		w.loaded = false
		return errors.Join(cause, err)
	}
	return cause
}

func (w *Wizard) requireStep(step Step) error {
	if w.step != step {
		return fmt.Errorf("%w: expected step %s, current %s", ErrInvalidTransition, step, w.step)
	}
	return nil
}

func (w *Wizard) validateService(svc domain.Service) error {
	if svc.ProviderID != w.providerID {
		return fmt.Errorf("%w: service %s belongs to another provider", ErrValidation, svc.ID)
	}
	if !svc.Active {
		return fmt.Errorf("%w: service %s is not active", ErrValidation, svc.ID)
	}
	return nil
}

func (w *Wizard) serviceID() *uuid.UUID {
	if svc, ok := w.motif.Service(); ok {
		id := svc.ID
		return &id
	}
	return nil
}

func (w *Wizard) today() time.Time {
	return w.timeProvider.Now()
}

func contactFromProfile(profile *UserProfile) Contact {
	if profile == nil {
		return Contact{}
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{profile.Address, profile.PostalCode, profile.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	return Contact{
		Name:    profile.Name,
		Email:   profile.Email,
		Phone:   profile.Phone,
		Address: strings.Join(parts, ", "),
	}
}

// buildNotes собирает заметку к записи:
// "Motif: <текст>. Client: <имя> | Tel: <телефон> | Email: <email или -> | <заметки>"
func buildNotes(m Motif, c Contact) string {
	var b strings.Builder
	if text, ok := m.CustomText(); ok {
		b.WriteString("Motif: ")
		b.WriteString(strings.TrimSpace(text))
		b.WriteString(". ")
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		email = "-"
	}
	fmt.Fprintf(&b, "Client: %s | Tel: %s | Email: %s | %s",
		strings.TrimSpace(c.Name), strings.TrimSpace(c.Phone), email, strings.TrimSpace(c.Notes))
	return b.String()
}
