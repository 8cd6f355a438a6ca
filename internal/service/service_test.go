package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Athycodz/CoMpliment-Walll/internal/moderation"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

// stubModerator returns a fixed verdict and counts invocations.
type stubModerator struct {
	result moderation.Result
	calls  int
}

func (m *stubModerator) Moderate(ctx context.Context, message string) moderation.Result {
	m.calls++
	return m.result
}

func approveAll() *stubModerator {
	return &stubModerator{result: moderation.Result{
		Status:      models.ModerationApproved,
		AIModerated: true,
		Raw:         `{"status": "approved", "reason": ""}`,
	}}
}

func newTestService(t *testing.T, moderator Moderator) *WallService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Compliment{}, &models.DeviceToken{}))
	return NewWallService(db, moderator, nil, nil)
}

func seedUser(t *testing.T, s *WallService, id, username, email string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: username, Email: email, Age: 20}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func seedCompliment(t *testing.T, s *WallService, c *models.Compliment) *models.Compliment {
	t.Helper()
	if c.ModerationStatus == "" {
		c.ModerationStatus = models.ModerationApproved
	}
	require.NoError(t, s.db.Create(c).Error)
	return c
}

func countCompliments(t *testing.T, s *WallService) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&models.Compliment{}).Count(&n).Error)
	return n
}

func complimentsReceived(t *testing.T, s *WallService, userID string) int {
	t.Helper()
	var user models.User
	require.NoError(t, s.db.First(&user, "id = ?", userID).Error)
	return user.ComplimentsReceived
}

// waitBackground gives the fire-and-forget notification goroutine a moment so
// the race detector stays quiet when the test DB is torn down.
func waitBackground() {
	time.Sleep(10 * time.Millisecond)
}
