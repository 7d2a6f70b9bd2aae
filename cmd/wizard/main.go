package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/wizard"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/logger"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// Использование:
//
//	wizard -provider <uuid> [-api http://localhost:8080] [-token <jwt>]
//
// Токен можно передать через ARTISAN_TOKEN. Без токена запись создаётся анонимно.
func main() {
	apiURL := flag.String("api", "http://localhost:8080", "адрес сервиса записи")
	providerFlag := flag.String("provider", "", "ID мастера")
	token := flag.String("token", os.Getenv("ARTISAN_TOKEN"), "токен сессии клиента")
	timeout := flag.Duration("timeout", 10*time.Second, "таймаут запросов к API")
	policyFlag := flag.String("policy", string(domain.BlockPendingAndAccepted), "какие записи занимают время")
	logLevel := flag.String("log-level", "error", "уровень логирования")
	flag.Parse()

	providerID, err := uuid.Parse(*providerFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid provider ID %q: %v\n", *providerFlag, err)
		os.Exit(2)
	}
	policy, err := domain.ParseBlockingPolicy(*policyFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid policy: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New("", *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	client := bookingapi.NewClient(strings.TrimRight(*apiURL, "/"), *token, *timeout, log)
	s := &session{
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
		client: client,
		wizard: wizard.New(providerID, client, client, log, wizard.WithBlockingPolicy(policy)),
	}

	if err := s.run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Booking aborted: %v\n", err)
		os.Exit(1)
	}
}

// session диалог с клиентом в терминале
type session struct {
	in     *bufio.Scanner
	out    io.Writer
	client *bookingapi.Client
	wizard *wizard.Wizard
}

func (s *session) run(ctx context.Context) error {
	if err := s.wizard.Load(ctx); err != nil {
		return err
	}

	profile, err := s.client.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Профиль недоступен, контакты нужно будет ввести вручную (%v)\n", err)
	}
	if profile != nil {
		fmt.Fprintf(s.out, "Здравствуйте, %s!\n", profile.Name)
	}

	if err := s.wizard.BrowseServices(); err != nil {
		return err
	}
	if err := s.chooseMotif(); err != nil {
		return err
	}
	if err := s.wizard.ContinueToCalendar(profile); err != nil {
		return err
	}

	for {
		if err := s.chooseDate(); err != nil {
			return err
		}
		if err := s.chooseSlot(); err != nil {
			return err
		}
		if err := s.fillContact(); err != nil {
			return err
		}

		result, err := s.wizard.Submit(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(s.out, "Запись создана: %s %s %s, статус %s\n",
				result.ID, result.BookingDate.Format(domain.DateFormat), result.BookingTime, result.Status)
			return nil
		case errors.Is(err, wizard.ErrDayFull):
			fmt.Fprintln(s.out, "На эту дату запись уже закрыта, выберите другую дату.")
		case errors.Is(err, wizard.ErrConflict):
			fmt.Fprintln(s.out, "Это время только что заняли, выберите другое.")
		case errors.Is(err, wizard.ErrValidation):
			fmt.Fprintf(s.out, "Запись отклонена: %v\n", err)
		default:
			return err
		}
	}
}

func (s *session) chooseMotif() error {
	services := s.wizard.Services()
	fmt.Fprintln(s.out, "Услуги мастера:")
	for i, svc := range services {
		fmt.Fprintf(s.out, "  %d. %s (%d мин, %s TTC)\n", i+1, svc.Name, svc.EffectiveDuration(), svc.PriceTTC.StringFixed(2))
	}
	fmt.Fprintln(s.out, "  0. Свой мотив")

	for {
		answer, err := s.ask("Выберите услугу")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 0 || n > len(services) {
			fmt.Fprintln(s.out, "Введите номер из списка.")
			continue
		}

		if n > 0 {
			return s.wizard.SelectService(services[n-1])
		}

		if err := s.wizard.EnableCustomMotif(); err != nil {
			return err
		}
		text, err := s.ask("Опишите мотив")
		if err != nil {
			return err
		}
		return s.wizard.SetCustomMotif(text)
	}
}

func (s *session) chooseDate() error {
	now := time.Now()
	for _, month := range []time.Time{now, now.AddDate(0, 1, 0)} {
		days, err := s.wizard.Month(month.Year(), month.Month())
		if err != nil {
			return err
		}
		bookable := make([]string, 0, len(days))
		for _, d := range days {
			if d.Bookable {
				bookable = append(bookable, strconv.Itoa(d.Date.Day()))
			}
		}
		fmt.Fprintf(s.out, "%s: %s\n", month.Format(domain.MonthFormat), strings.Join(bookable, " "))
	}

	for {
		answer, err := s.ask("Дата (YYYY-MM-DD)")
		if err != nil {
			return err
		}
		date, err := domain.ParseDate(answer)
		if err != nil {
			fmt.Fprintln(s.out, "Неверный формат даты.")
			continue
		}
		if err := s.wizard.SelectDate(date); err != nil {
			if errors.Is(err, wizard.ErrValidation) {
				fmt.Fprintf(s.out, "%v\n", err)
				continue
			}
			return err
		}
		return nil
	}
}

func (s *session) chooseSlot() error {
	slots, err := s.wizard.Slots()
	if err != nil {
		return err
	}

	free := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			free = append(free, slot.Time.String())
		}
	}
	if len(free) == 0 {
		fmt.Fprintln(s.out, "На эту дату свободного времени нет.")
		return s.chooseDateAndSlot()
	}
	fmt.Fprintf(s.out, "Свободное время: %s\n", strings.Join(free, " "))

	for {
		answer, err := s.ask("Время (HH:MM)")
		if err != nil {
			return err
		}
		at, err := types.NewTimeStringFromString(answer)
		if err != nil {
			fmt.Fprintln(s.out, "Неверный формат времени.")
			continue
		}
		if err := s.wizard.SelectSlot(at); err != nil {
			if errors.Is(err, wizard.ErrValidation) {
				fmt.Fprintf(s.out, "%v\n", err)
				continue
			}
			return err
		}
		return nil
	}
}

func (s *session) chooseDateAndSlot() error {
	if err := s.chooseDate(); err != nil {
		return err
	}
	return s.chooseSlot()
}

func (s *session) fillContact() error {
	c := s.wizard.Contact()

	fields := []struct {
		label string
		value *string
	}{
		{label: "Имя", value: &c.Name},
		{label: "Телефон", value: &c.Phone},
		{label: "Email", value: &c.Email},
		{label: "Адрес", value: &c.Address},
		{label: "Комментарий", value: &c.Notes},
	}
	for _, f := range fields {
		prompt := f.label
		if *f.value != "" {
			prompt = fmt.Sprintf("%s [%s]", f.label, *f.value)
		}
		answer, err := s.ask(prompt)
		if err != nil {
			return err
		}
		if answer != "" {
			*f.value = answer
		}
	}
	if err := s.wizard.UpdateContact(c); err != nil {
		return err
	}

	answer, err := s.ask("Согласны с условиями записи? (y/n)")
	if err != nil {
		return err
	}
	if err := s.wizard.SetConsent(strings.EqualFold(answer, "y")); err != nil {
		return err
	}
	if !s.wizard.CanSubmit() {
		fmt.Fprintln(s.out, "Нужны имя, телефон и согласие с условиями.")
		return s.fillContact()
	}
	return nil
}

func (s *session) ask(prompt string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}
