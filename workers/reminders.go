package workers

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/clinio/clinic-server/config"
	"github.com/clinio/clinic-server/models/clinic"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/services"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	mail "github.com/xhit/go-simple-mail/v2"
)

// AppointmentSource yields the appointments entering the reminder window.
type AppointmentSource interface {
	DueForReminder(ctx context.Context, window time.Duration) ([]clinic.Appointment, error)
}

// Notifier is the notification write gateway.
type Notifier interface {
	Create(ctx context.Context, details services.NotificationDetails, accountId int64) (*userdata.Notification, error)
}

// Guard claims a one-shot key so a reminder is sent at most once per
// appointment across ticks and restarts.
type Guard interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type Mailer interface {
	Send(to, subject, body string) error
}

// ReminderWorker is the singleton background task: it scans for
// upcoming appointments and delivers a reminder notification plus a
// best-effort email, outside any request's lifetime.
type ReminderWorker struct {
	appointments AppointmentSource
	notifier     Notifier
	guard        Guard
	mailer       Mailer
	interval     time.Duration
	window       time.Duration
	started      uint32
	stop         chan struct{}
}

func NewReminderWorker(cfg *config.Config, appointments *repos.AppointmentRepo, noti *services.NotificationService, rdb *redis.Client, smtp *mail.SMTPClient) *ReminderWorker {
	return &ReminderWorker{
		appointments: appointments,
		notifier:     noti,
		guard:        &redisGuard{client: rdb},
		mailer:       &smtpMailer{client: smtp, from: cfg.EmailConfig.From},
		interval:     time.Second * time.Duration(cfg.WorkerConfig.IntervalSeconds),
		window:       time.Hour * time.Duration(cfg.WorkerConfig.ReminderWindowHours),
		stop:         make(chan struct{}),
	}
}

// Start launches the loop in its own goroutine and returns immediately.
// A second call is a no-op and reports false: exactly one loop runs per
// process.
func (w *ReminderWorker) Start() bool {
	if !atomic.CompareAndSwapUint32(&w.started, 0, 1) {
		log.Warn().Msg("Reminder worker already started")
		return false
	}

	log.Info().Dur("interval", w.interval).Msg("Starting reminder worker")
	go w.loop()
	return true
}

func (w *ReminderWorker) Stop() {
	if atomic.CompareAndSwapUint32(&w.started, 1, 2) {
		close(w.stop)
	}
}

func (w *ReminderWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			log.Info().Msg("Reminder worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(context.Background())
		}
	}
}

// RunOnce performs one scheduled sweep. Every appointment is an
// isolated unit of work: a failure is logged and the sweep moves on to
// the next one, and a failed sweep never terminates the loop.
func (w *ReminderWorker) RunOnce(ctx context.Context) {
	due, err := w.appointments.DueForReminder(ctx, w.window)
	if err != nil {
		log.Error().Err(err).Msg("Reminder sweep could not list appointments")
		return
	}

	for _, appointment := range due {
		if err := w.remind(ctx, appointment); err != nil {
			log.Error().Err(err).Int64("appointment", appointment.Id).Msg("Reminder unit failed")
		}
	}
}

func (w *ReminderWorker) remind(ctx context.Context, appointment clinic.Appointment) error {
	claimed, err := w.guard.Claim(ctx, "reminder:"+strconv.FormatInt(appointment.Id, 10), w.window*2)
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	_, err = w.notifier.Create(ctx, services.NotificationDetails{
		Type:    userdata.NotificationReminder,
		Title:   "Appointment reminder",
		Message: fmt.Sprintf("Your appointment is scheduled for %s", appointment.ScheduledAt.Format(time.RFC1123)),
	}, appointment.PatientId)
	if err != nil {
		return err
	}

	if appointment.Patient != nil && appointment.Patient.Email != "" {
		if err := w.mailer.Send(appointment.Patient.Email, "Appointment reminder", fmt.Sprintf("Hello %s, your appointment is scheduled for %s.", appointment.Patient.Name, appointment.ScheduledAt.Format(time.RFC1123))); err != nil {
			log.Warn().Err(err).Int64("appointment", appointment.Id).Msg("Reminder email failed")
		}
	}

	return nil
}

type redisGuard struct {
	client *redis.Client
}

func (g *redisGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, key, 1, ttl).Result()
}

type smtpMailer struct {
	client *mail.SMTPClient
	from   string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	email := mail.NewMSG()
	email.SetFrom(m.from).AddTo(to).SetSubject(subject)
	email.SetBody(mail.TextPlain, body)

	return email.Send(m.client)
}
