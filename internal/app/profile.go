package app

import "github.com/alexanderramin/strata/internal/domain"

type ProfileView struct {
	// Profile is nil until a snapshot with a profile has been synced.
	Profile           *domain.UserProfile
	EffectiveTimezone string
	Sync              *domain.SyncState
}
