// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// Chat is a conversation between two users (direct) or a named group.
// The server stores it as plain metadata; everything secret about the chat
// lives in the per-member [WrappedKey] records.
type Chat struct {
	// ChatID is the chat identifier. Direct chats use [DirectChatID]; groups
	// use a UUIDv7 generated by the creating client.
	ChatID string `json:"chat_id"`

	// IsGroup distinguishes group chats from direct chats.
	IsGroup bool `json:"is_group"`

	// Name and Description are only meaningful for groups.
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`

	// CreatedBy is the user that created the chat.
	CreatedBy string `json:"created_by"`

	// Members is the list of current member ids.
	Members []string `json:"members"`

	// Admins is the list of group admins. A nil list means the chat predates
	// admin tracking; see [Chat.IsAdmin].
	Admins []string `json:"admins,omitempty"`

	CreatedAt     time.Time  `json:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`

	// Streak counts the consecutive days on which both members of a direct
	// chat sent a message. StreakDay is the UTC day the streak last grew.
	Streak    int    `json:"streak,omitempty"`
	StreakDay string `json:"streak_day,omitempty"`

	// UnreadCounts holds, per member, the number of messages received since
	// the member last read the chat. Members without unread messages are
	// absent.
	UnreadCounts map[string]int `json:"unread_counts,omitempty"`

	// ClearedAt holds, per member, when the member cleared the history for
	// themself. Older messages are not listed for that member.
	ClearedAt map[string]time.Time `json:"cleared_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Chat model.
func (c Chat) TableName() string {
	return "chats"
}

// HasMember reports whether userID is a current member of the chat.
func (c Chat) HasMember(userID string) bool {
	return slices.Contains(c.Members, userID)
}

// IsAdmin reports whether userID may administer the group. Direct chats have
// no admins. Groups without an admin list fall back to their creator.
func (c Chat) IsAdmin(userID string) bool {
	if !c.IsGroup {
		return false
	}
	if c.Admins == nil {
		return c.CreatedBy == userID
	}
	return slices.Contains(c.Admins, userID)
}

// Public returns the metadata of a group that may be shown to users outside
// of it.
func (c Chat) Public() Chat {
	return Chat{
		ChatID:      c.ChatID,
		IsGroup:     c.IsGroup,
		Name:        c.Name,
		Description: c.Description,
		PhotoURL:    c.PhotoURL,
		CreatedAt:   c.CreatedAt,
	}
}

// CurrentStreak is the streak as of now: a streak that did not grow today or
// yesterday is over.
func (c Chat) CurrentStreak(now time.Time) int {
	if c.IsGroup || !streakAlive(c.StreakDay, now) {
		return 0
	}
	return c.Streak
}

// StreakDayLayout formats the UTC day stored in [Chat.StreakDay].
const StreakDayLayout = "2006-01-02"

// NextStreak advances the streak of a direct chat after one of its members
// sent a message at now. lastSent holds the latest send time of every member,
// the sender included. A streak that did not grow today or yesterday restarts
// from zero; it grows once per day on which both members have sent a message.
func NextStreak(streak int, streakDay string, members []string, lastSent map[string]time.Time, now time.Time) (int, string) {
	now = now.UTC()
	today := now.Format(StreakDayLayout)

	if streakDay != "" && !streakAlive(streakDay, now) {
		streak = 0
	}
	if len(members) != 2 || streakDay == today {
		return streak, streakDay
	}

	for _, m := range members {
		sent, ok := lastSent[m]
		if !ok || sent.UTC().Format(StreakDayLayout) != today {
			return streak, streakDay
		}
	}

	return streak + 1, today
}

func streakAlive(streakDay string, now time.Time) bool {
	now = now.UTC()
	return streakDay == now.Format(StreakDayLayout) ||
		streakDay == now.AddDate(0, 0, -1).Format(StreakDayLayout)
}

// DirectChatID returns the deterministic identifier of the direct chat
// between two users: the lexicographically greater id first.
func DirectChatID(userA, userB string) string {
	if userA > userB {
		return userA + "_" + userB
	}
	return userB + "_" + userA
}

// CreateChatRequest carries a new chat together with one wrapped key per
// member. The server persists both in a single transaction.
type CreateChatRequest struct {
	Chat Chat         `json:"chat"`
	Keys []WrappedKey `json:"keys"`
}

// AddMemberRequest adds UserID to a chat and stores the chat key wrapped for
// that user. Both mutations are applied atomically.
type AddMemberRequest struct {
	ChatID string     `json:"chat_id"`
	UserID string     `json:"user_id"`
	Key    WrappedKey `json:"key"`
}

// RemoveMemberRequest removes UserID from a chat and deletes exactly that
// user's wrapped key.
type RemoveMemberRequest struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id"`
}

// UpdateChatRequest edits the metadata of a group. Nil fields are left
// unchanged.
type UpdateChatRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdateChatRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.PhotoURL == nil
}
