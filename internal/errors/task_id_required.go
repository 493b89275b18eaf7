package errors

var ErrTaskIDRequired = &Exception{
	Kind:    KindInvalidInput,
	Message: "task id is required",
}
