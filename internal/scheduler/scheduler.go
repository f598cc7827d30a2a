// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/service"
)

// Scheduler は定期ジョブ（復習リマインダー）を管理します
type Scheduler struct {
	scheduler *gocron.Scheduler
	reminder  service.ReminderService
	cfg       *config.Config
	logger    *slog.Logger
}

func New(reminder service.ReminderService, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		reminder:  reminder,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start は設定された時刻の日次リマインダージョブを登録して非同期起動します。
// リマインダーが無効なら何もしません。
func (s *Scheduler) Start() {
	if !s.cfg.Reminder.Enabled {
		s.logger.Info("Reminder job disabled")
		return
	}

	sendAt := s.cfg.Reminder.SendAt
	if _, err := s.scheduler.Every(1).Day().At(sendAt).Do(s.runReminder); err != nil {
		s.logger.Error("Failed to schedule reminder job", "send_at", sendAt, "error", err)
		return
	}

	s.scheduler.StartAsync()
	s.logger.Info("Reminder job scheduled", "send_at", sendAt)
}

// Stop は全ジョブを停止します
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.reminder.SendDueSummary(ctx); err != nil {
		s.logger.Error("Reminder job failed", "error", err)
	}
}
