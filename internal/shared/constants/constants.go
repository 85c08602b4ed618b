package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeMultipart = "multipart/form-data"

	// Gin context keys set by the auth and request-id middleware.
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	TableUsers          = "users"
	TableComplaints     = "complaints"
	TableComplaintVotes = "complaint_votes"

	// Redis keys. Prefixes ending in ':' take an ID suffix.
	RedisKeyComplaintFeed  = "fixora:complaints:feed"
	RedisKeyVoteDirections = "fixora:complaints:votes:"
	RedisChannelComplaints = "fixora:complaints:events"
	RedisKeyRateLimit      = "fixora:ratelimit:"

	ErrMsgInternalServerError = "Internal server error occurred"
)
