package errors

var ErrUnauthorized = &Exception{
	Kind:    KindUnauthorized,
	Message: "missing or invalid bearer token",
}
