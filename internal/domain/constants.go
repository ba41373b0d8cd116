package domain

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

const (
	MembershipFree = "free"
	MembershipPaid = "paid"
)

// Library content types.
const (
	ContentTypeVideo = "video"
	ContentTypeAudio = "audio"
	ContentTypePDF   = "pdf"
)

// Feed post content types.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypePDF   = "pdf"
	PostTypeAudio = "audio"
	PostTypeVideo = "video"
)

const (
	ReactionLike       = "like"
	ReactionLove       = "love"
	ReactionCelebrate  = "celebrate"
	ReactionInsightful = "insightful"
)

var ReactionTypes = []string{ReactionLike, ReactionLove, ReactionCelebrate, ReactionInsightful}

// Admin member actions.
const (
	ActionActivate = "activate"
	ActionSuspend  = "suspend"
	ActionDelete   = "delete"
	ActionUpgrade  = "upgrade"
)

// Upload buckets.
const (
	BucketWorkshopMedia      = "workshop-media"
	BucketWorkshopThumbnails = "workshop-thumbnails"
	BucketContentMedia       = "content-media"
	BucketContentThumbnails  = "content-thumbnails"
)

var Buckets = []string{BucketWorkshopMedia, BucketWorkshopThumbnails, BucketContentMedia, BucketContentThumbnails}

// Event and audit action names.
const (
	EventMemberSignedUp      = "member.signed_up"
	EventMemberLoggedIn      = "member.logged_in"
	EventMemberLoggedOut     = "member.logged_out"
	EventReferralClicked     = "referral.clicked"
	EventReferralConverted   = "referral.converted"
	EventMemberStatusChanged = "member.status_changed"
	EventMemberUpgraded      = "member.upgraded"
	EventContentCreated      = "content.created"
	EventContentDeleted      = "content.deleted"
	EventWorkshopCreated     = "workshop.created"
)

// Subscription length granted by an upgrade.
const SubscriptionDays = 365

// Live feed events pushed over the websocket.
const (
	FeedPostCreated     = "post.created"
	FeedCommentCreated  = "comment.created"
	FeedReactionChanged = "reaction.changed"
)
