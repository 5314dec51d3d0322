package models

type AccountType string
type CollaborationStatus string
type PostStatus string
type ApplicationStatus string
type SwipeDirection string
type NotificationType string
type RateType string
type Currency string
type OutboxStatus string

const (
	AccountTypeInfluencer AccountType = "influencer"
	AccountTypeBrand      AccountType = "brand"

	CollaborationStatusPending    CollaborationStatus = "pending"
	CollaborationStatusInProgress CollaborationStatus = "in_progress"
	CollaborationStatusCompleted  CollaborationStatus = "completed"
	CollaborationStatusCancelled  CollaborationStatus = "cancelled"

	PostStatusOpen       PostStatus = "open"
	PostStatusInProgress PostStatus = "in_progress"
	PostStatusClosed     PostStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"

	NotificationCollabRequest   NotificationType = "collab_request"
	NotificationCollabAccepted  NotificationType = "collab_accepted"
	NotificationCollabCompleted NotificationType = "collab_completed"
	NotificationCollabInterest  NotificationType = "collab_interest"

	RatePerPost     RateType = "per_post"
	RatePerStory    RateType = "per_story"
	RatePerReel     RateType = "per_reel"
	RatePerVideo    RateType = "per_video"
	RatePerHour     RateType = "per_hour"
	RatePerProject  RateType = "per_project"
	RatePerCampaign RateType = "per_campaign"

	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyBRL Currency = "BRL"

	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusDone       OutboxStatus = "done"
	OutboxStatusFailed     OutboxStatus = "failed"
)

var NotificationTypes = []NotificationType{
	NotificationCollabRequest,
	NotificationCollabAccepted,
	NotificationCollabCompleted,
	NotificationCollabInterest,
}

func (t NotificationType) Valid() bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t AccountType) Valid() bool {
	return t == AccountTypeInfluencer || t == AccountTypeBrand
}

func (s CollaborationStatus) Valid() bool {
	switch s {
	case CollaborationStatusPending, CollaborationStatusInProgress,
		CollaborationStatusCompleted, CollaborationStatusCancelled:
		return true
	}
	return false
}

func (s CollaborationStatus) Terminal() bool {
	return s == CollaborationStatusCompleted || s == CollaborationStatusCancelled
}

func (r RateType) Valid() bool {
	switch r {
	case RatePerPost, RatePerStory, RatePerReel, RatePerVideo, RatePerHour, RatePerProject, RatePerCampaign:
		return true
	}
	return false
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD, CurrencyAUD, CurrencyINR, CurrencyJPY, CurrencyBRL:
		return true
	}
	return false
}

func (s PostStatus) Valid() bool {
	return s == PostStatusOpen || s == PostStatusInProgress || s == PostStatusClosed
}

func (s ApplicationStatus) Valid() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}
