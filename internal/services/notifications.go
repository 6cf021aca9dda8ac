package services

import (
	"context"
	"log"
	"time"

	"notemind-backend/internal/repository"
)

const (
	reminderWindow       = 24 * time.Hour
	reminderPollInterval = 1 * time.Hour
)

// DueReminderScheduler periodically emails users about Task/Reminder
// notes that come due within the next day. Each note is reminded at
// most once (reminded_at gate in the repository query).
type DueReminderScheduler struct {
	noteRepo *repository.NoteRepo
	email    *EmailService
	stopChan chan struct{}
}

func NewDueReminderScheduler(noteRepo *repository.NoteRepo, email *EmailService) *DueReminderScheduler {
	return &DueReminderScheduler{
		noteRepo: noteRepo,
		email:    email,
		stopChan: make(chan struct{}),
	}
}

func (s *DueReminderScheduler) Start() {
	if s.noteRepo == nil || s.email == nil {
		return
	}

	go s.loop()
	log.Printf("Due reminder scheduler started")
}

func (s *DueReminderScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *DueReminderScheduler) loop() {
	// Run on startup as well as by interval.
	s.sendDueReminders(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sendDueReminders(context.Background(), time.Now().UTC())
		}
	}
}

func (s *DueReminderScheduler) sendDueReminders(ctx context.Context, now time.Time) {
	due, err := s.noteRepo.ListDueForReminder(ctx, now, reminderWindow)
	if err != nil {
		log.Printf("due reminders: failed to list notes: %v", err)
		return
	}

	for _, item := range due {
		if err := s.email.SendDueReminderEmail(item.Email, item.Name, item.Title, item.DueDate); err != nil {
			log.Printf("due reminders: failed to send to %s: %v", item.Email, err)
			continue
		}

		if err := s.noteRepo.MarkReminded(ctx, item.NoteID, now); err != nil {
			log.Printf("due reminders: failed to mark note %s reminded: %v", item.NoteID, err)
		}
	}
}
