package domain

import "time"

// Event bus topics.
const (
	TopicEscrowTransitioned   = "escrow:transitioned"
	TopicPropertyListed       = "property:listed"
	TopicPropertyUpdated      = "property:updated"
	TopicPropertyRemoved      = "property:removed"
	TopicReviewPosted         = "review:posted"
	TopicLocationShared       = "safety:location_shared"
	TopicLocationShareEnded   = "safety:location_share_ended"
	TopicEmergencyTriggered   = "safety:emergency"
	TopicMaintenanceRequested = "maintenance:requested"
	TopicUserVerified         = "user:verified"
)

// EscrowTransitioned is published once per edge walked.
type EscrowTransitioned struct {
	Transaction EscrowTransaction `json:"transaction"`
	From        EscrowStatus      `json:"from"`
	To          EscrowStatus      `json:"to"`
	At          time.Time         `json:"at"`
}

// UserVerified is published after a verification call.
type UserVerified struct {
	User     User              `json:"user"`
	Previous VerificationLevel `json:"previous"`
}
