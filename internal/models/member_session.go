package models

// MemberSession represents an authenticated member. ProfileID is the actor
// identity passed into every collaboration operation.
type MemberSession struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// MemberStats are the dashboard counters of a member
type MemberStats struct {
	ProfileID       string `json:"profileId"`
	Skills          int    `json:"skills"`
	Projects        int    `json:"projects"`
	Badges          int    `json:"badges"`
	Collaborations  int    `json:"collaborations"`
	PendingReceived int    `json:"pendingReceived"`
}
