package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

func TestMemberColorStable(t *testing.T) {
	first := MemberColor("uid-alice")
	assert.Equal(t, first, MemberColor("uid-alice"), "same UID always maps to the same color")
	assert.Contains(t, memberPalette, first)
	assert.Contains(t, memberPalette, MemberColor("uid-bob"))
}

func TestJoinedAgo(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "same day", t: now.Add(-5 * time.Hour), want: "today"},
		{name: "one day", t: now.Add(-30 * time.Hour), want: "1 day ago"},
		{name: "days", t: now.Add(-4 * 24 * time.Hour), want: "4 days ago"},
		{name: "one week", t: now.Add(-9 * 24 * time.Hour), want: "1 week ago"},
		{name: "weeks", t: now.Add(-20 * 24 * time.Hour), want: "2 weeks ago"},
		{name: "one month", t: now.Add(-35 * 24 * time.Hour), want: "1 month ago"},
		{name: "months", t: now.Add(-100 * 24 * time.Hour), want: "3 months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinedAgo(tt.t, now))
		})
	}
}

func TestMembersDirectory(t *testing.T) {
	s := newTestService(t, approveAll())
	seedUser(t, s, "uid-carol", "carol", "carol@example.com")
	seedUser(t, s, "uid-alice", "alice", "alice@example.com")
	seedUser(t, s, "uid-bob", "bob", "bob@example.com")
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", "uid-alice").
		UpdateColumn("compliments_received", 4).Error)
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", "uid-bob").
		UpdateColumn("compliments_received", 3).Error)

	dir, err := s.Members(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, dir.Members, 3)

	// Alphabetical by username.
	assert.Equal(t, "alice", dir.Members[0].Username)
	assert.Equal(t, "bob", dir.Members[1].Username)
	assert.Equal(t, "carol", dir.Members[2].Username)

	assert.Equal(t, 4, dir.Members[0].ComplimentsReceived)
	assert.Equal(t, MemberColor("uid-alice"), dir.Members[0].Color)
	assert.Equal(t, "today", dir.Members[0].JoinedAgo)

	assert.Equal(t, 3, dir.Stats.TotalMembers)
	assert.Equal(t, 7, dir.Stats.TotalCompliments)
	assert.Equal(t, 2, dir.Stats.AveragePerMember) // round(7/3)
}

func TestMembersSearch(t *testing.T) {
	s := newTestService(t, approveAll())
	seedUser(t, s, "uid-alice", "Alice", "alice@example.com")
	seedUser(t, s, "uid-bob", "bob", "bob@campus.edu")
	seedUser(t, s, "uid-carol", "carol", "carol@example.com")

	// Case-insensitive substring on username.
	dir, err := s.Members(context.Background(), "ALI")
	require.NoError(t, err)
	require.Len(t, dir.Members, 1)
	assert.Equal(t, "Alice", dir.Members[0].Username)

	// Matches on email too.
	dir, err = s.Members(context.Background(), "campus.edu")
	require.NoError(t, err)
	require.Len(t, dir.Members, 1)
	assert.Equal(t, "bob", dir.Members[0].Username)

	// Stats ignore the filter.
	assert.Equal(t, 3, dir.Stats.TotalMembers)

	// No match, empty grid.
	dir, err = s.Members(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, dir.Members)
}

func TestMembersEmptyDirectory(t *testing.T) {
	s := newTestService(t, approveAll())

	dir, err := s.Members(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, dir.Members)
	assert.Zero(t, dir.Stats.TotalMembers)
	assert.Zero(t, dir.Stats.AveragePerMember)
}
