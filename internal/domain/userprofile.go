package domain

const (
	// DefaultTimezone is used when neither the profile nor the config names
	// a loadable IANA zone.
	DefaultTimezone = "America/New_York"

	// DefaultStrategyColor is the fallback swatch for strategies without one.
	DefaultStrategyColor = "#6B7280"

	// DefaultProfileID is the single local profile row.
	DefaultProfileID = "default"
)

type UserProfile struct {
	ID          string
	DisplayName string
	Email       string
	Timezone    string
	Role        Role
}

// EffectiveTimezone returns the first configured zone name, falling back
// to DefaultTimezone.
func (p *UserProfile) EffectiveTimezone(configured string) string {
	if p == nil {
		return CoalesceStr(configured, DefaultTimezone)
	}
	return CoalesceStr(p.Timezone, configured, DefaultTimezone)
}
