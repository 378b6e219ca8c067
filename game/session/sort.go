package session

import (
	"sort"

	"github.com/wricardo/focus-game/game/service"
)

// sortSessions orders sessions by creation time, then ID
func sortSessions(sessions []*service.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
}
