package preview

import (
	"log/slog"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	ferrors "git.home.luguber.info/inful/pagebuilder/internal/foundation/errors"
)

// RefreshDisabled turns the scheduled refresh off.
const RefreshDisabled = "-"

// newRefreshScheduler creates a scheduler running task on the cron
// expression schedule. It returns nil when schedule is empty or RefreshDisabled.
func newRefreshScheduler(schedule string, clock clockwork.Clock, task func()) (gocron.Scheduler, error) {
	if schedule == "" || schedule == RefreshDisabled {
		return nil, nil
	}
	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create scheduler").Build()
	}
	if _, err := s.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(task),
		gocron.WithName("date-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = s.Shutdown()
		return nil, ferrors.ConfigError("invalid preview refresh schedule").
			WithContext("schedule", schedule).
			WithCause(err).
			Build()
	}
	slog.Debug("Refresh job scheduled", slog.String("schedule", schedule))
	return s, nil
}
