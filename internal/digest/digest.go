// internal/digest/digest.go
package digest

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Athycodz/CoMpliment-Walll/internal/email"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// Job emails each member their unread compliment count once a day. It only
// reads: the compliments counter and read flags are never touched here.
type Job struct {
	db     *gorm.DB
	sender *email.Sender
	hour   int // local hour of day to run at
}

func NewJob(db *gorm.DB, sender *email.Sender, hour int) *Job {
	return &Job{db: db, sender: sender, hour: hour}
}

// Start runs the daily schedule in the background.
func (j *Job) Start() {
	go j.loop()
}

func (j *Job) loop() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, 0, 0, 0, now.Location())
		if !now.Before(next) {
			next = next.AddDate(0, 0, 1)
		}

		log.Printf("⏰ [DIGEST] Next unread digest at %s (in %v)", next.Format(time.RFC3339), next.Sub(now).Round(time.Second))
		time.Sleep(next.Sub(now))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		if err := j.RunOnce(ctx); err != nil {
			log.Printf("❌ [DIGEST] Run failed: %v", err)
		}
		cancel()

		// Guard against double firing on coarse clocks.
		time.Sleep(time.Minute)
	}
}

type unreadRow struct {
	ToUserID string
	Unread   int
}

// RunOnce sends one digest round immediately.
func (j *Job) RunOnce(ctx context.Context) error {
	var rows []unreadRow
	err := j.db.WithContext(ctx).Model(&models.Compliment{}).
		Select("to_user_id, COUNT(*) AS unread").
		Where("is_read = ?", false).
		Group("to_user_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	log.Printf("📬 [DIGEST] %d member(s) with unread compliments", len(rows))
	for _, row := range rows {
		var user models.User
		if err := j.db.WithContext(ctx).First(&user, "id = ?", row.ToUserID).Error; err != nil {
			log.Printf("⚠️ [DIGEST] Skipping %s: %v", row.ToUserID, err)
			continue
		}
		if err := j.sender.SendUnreadDigest(ctx, user.Email, user.Username, row.Unread); err != nil {
			log.Printf("⚠️ [DIGEST] Email to %s failed: %v", user.Username, err)
		}
	}
	return nil
}
