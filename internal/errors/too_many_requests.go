package errors

var ErrRateLimited = &Exception{
	Kind:    KindTooManyRequests,
	Message: "rate limit exceeded",
}
