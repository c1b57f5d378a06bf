package types

import "time"

// User is owned by the external auth flow; the core only reads and
// soft-deletes it (spec.md §3).
type User struct {
	ID                 string           `gorm:"column:id;primaryKey" json:"id"`
	DisplayName        string           `gorm:"column:display_name" json:"displayName"`
	Bio                string           `gorm:"column:bio" json:"bio"`
	Pronouns           string           `gorm:"column:pronouns" json:"pronouns"`
	City               string           `gorm:"column:city" json:"city"`
	Country            string           `gorm:"column:country" json:"country"`
	Latitude           *float64         `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude          *float64         `gorm:"column:longitude" json:"longitude,omitempty"`
	VoiceURL           string           `gorm:"column:voice_url" json:"voiceUrl,omitempty"`
	SubscriptionTier   SubscriptionTier `gorm:"column:subscription_tier" json:"subscriptionTier"`
	OnboardingComplete bool             `gorm:"column:onboarding_complete" json:"onboardingComplete"`
	LastActiveAt       time.Time        `gorm:"column:last_active_at" json:"lastActiveAt"`
	DeletedAt          *time.Time       `gorm:"column:deleted_at" json:"-"`
	CreatedAt          time.Time        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time        `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// HasLocation reports whether the user's coordinates are known, used by
// ERS's geographic modifier (spec.md §4.3: "1.0 if either location is unknown").
func (u *User) HasLocation() bool {
	return u != nil && u.Latitude != nil && u.Longitude != nil
}

// IsActive reports whether the user qualifies for the daily rebuild /
// DFRE candidate pool: active within 7 days, not deleted, onboarded.
func (u *User) IsActive(now time.Time) bool {
	if u == nil || u.DeletedAt != nil || !u.OnboardingComplete {
		return false
	}
	return now.Sub(u.LastActiveAt) <= 7*24*time.Hour
}

func (u *User) DaysSinceActive(now time.Time) float64 {
	return now.Sub(u.LastActiveAt).Hours() / 24
}
