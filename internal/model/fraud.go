package model

import "time"

type FlagKind string

const (
	// FlagVolumeAnomaly marks a referrer whose direct referral count exceeds
	// the configured threshold.
	FlagVolumeAnomaly FlagKind = "volume_anomaly"
	// FlagNameCollision marks a direct referral whose full name equals the
	// referrer's own.
	FlagNameCollision FlagKind = "name_collision"
	// FlagPhonePrefixCluster marks referrals whose phone numbers share a
	// prefix with too many siblings, a batch-SIM pattern.
	FlagPhonePrefixCluster FlagKind = "phone_prefix_cluster"
)

// ReferralEdge is one direct referral as seen by the admin audit.
type ReferralEdge struct {
	FirstName   string
	FullName    string
	PhoneNumber string
	CreatedAt   time.Time
	Flags       []FlagKind
}

// AuditReport annotates a referrer and its direct edges with advisory fraud
// flags. Flags never block writes, they only steer human review.
type AuditReport struct {
	ParticipantID string
	FullName      string
	ReferralCount int
	Flags         []FlagKind
	Edges         []ReferralEdge
}
