package main

import (
	"context"
	"time"

	"github.com/clinio/clinic-server/channel"
	"github.com/clinio/clinic-server/config"
	"github.com/clinio/clinic-server/controllers"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/server"
	"github.com/clinio/clinic-server/services"
	"github.com/clinio/clinic-server/utils"
	"github.com/clinio/clinic-server/workers"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
)

func main() {

	opts := []fx.Option{}
	opts = append(opts, provideOptions()...)
	opts = append(opts, fx.Invoke(run))

	app := fx.New(opts...)

	app.Run()
}

func provideOptions() []fx.Option {
	return []fx.Option{
		fx.Invoke(utils.ConfigureLogger),
		fx.Provide(config.Parse),
		fx.Invoke(func(config *config.Config) {
			utils.InitSharedConstants(*config.JwtParsedPublicKey)
		}),
		fx.Provide(config.ProvidePostgres),
		fx.Provide(config.ProvideRedis),
		fx.Provide(config.ProvideSmtp),
		fx.Provide(func(cfg *config.Config) *fiber.App {
			return server.CreateServer(cfg)
		}),
		fx.Provide(utils.GetDefaultRouter),
		fx.Provide(channel.NewRegistry),
		fx.Provide(repos.NewAccountRepo),
		fx.Provide(repos.NewNotificationRepo),
		fx.Provide(repos.NewAppointmentRepo),
		fx.Provide(repos.NewScheduleRepo),
		fx.Provide(repos.NewLabTestRepo),
		fx.Provide(repos.NewTransactionRepo),
		fx.Provide(services.NewNotificationService),
		fx.Provide(workers.NewReminderWorker),
		fx.Invoke(controllers.RegisterAccountController),
		fx.Invoke(controllers.RegisterAuthController),
		fx.Invoke(controllers.RegisterAppointmentController),
		fx.Invoke(controllers.RegisterScheduleController),
		fx.Invoke(controllers.RegisterLabTestController),
		fx.Invoke(controllers.RegisterTransactionController),
		fx.Invoke(controllers.RegisterNotificationController),
		fx.Invoke(controllers.RegisterRealtimeController),
		fx.Invoke(startWorker),
	}
}

// startWorker runs the reminder loop for the process lifetime. The
// worker provider depends on the Postgres and redis providers, so the
// loop only ever starts once durable storage is reachable.
func startWorker(worker *workers.ReminderWorker, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			worker.Stop()
			return nil
		},
	})
}

func run(app *fiber.App, config *config.Config, registry *channel.Registry, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			errChan := make(chan error)

			go func() {
				errChan <- app.Listen(config.Port)
			}()

			select {
			case err := <-errChan:
				return err
			case <-time.After(100 * time.Millisecond):
				return nil
			}
		},
		OnStop: func(ctx context.Context) error {
			registry.Close()
			return app.Shutdown()
		},
	})
}
