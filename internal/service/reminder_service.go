// internal/service/reminder_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go_5_hanzi_drill/internal/config"
	"go_5_hanzi_drill/internal/middleware"
	"go_5_hanzi_drill/internal/model"
	"go_5_hanzi_drill/internal/repository"
)

// ReminderService は期限到来した復習のサマリメールを送ります
type ReminderService interface {
	SendDueSummary(ctx context.Context) error
}

type reminderService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
	mailer   Mailer
	cfg      *config.Config
}

func NewReminderService(db *gorm.DB, progRepo repository.ProgressRepository, mailer Mailer, cfg *config.Config) ReminderService {
	return &reminderService{
		db:       db,
		progRepo: progRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (s *reminderService) SendDueSummary(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)
	now := time.Now()

	var lines []string
	var total int64
	for _, mode := range model.AllPracticeModes {
		count, err := s.progRepo.CountDueByMode(ctx, s.db, mode, now)
		if err != nil {
			logger.Error("Failed to count due words", "mode", mode.String(), "error", err)
			return err
		}
		if count > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %d語", mode.String(), count))
			total += count
		}
	}

	if total == 0 {
		logger.Info("No due words, skipping reminder mail")
		return nil
	}

	subject := fmt.Sprintf("復習リマインダー: %d語が復習待ちです", total)
	body := "復習期限が来ている単語があります。\n\n" + strings.Join(lines, "\n") + "\n"

	if err := s.mailer.Send(ctx, s.cfg.Reminder.To, subject, body); err != nil {
		logger.Error("Failed to send reminder mail", "error", err)
		return err
	}

	logger.Info("Reminder mail sent", "total_due", total)
	return nil
}
