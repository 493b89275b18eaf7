package errors

var ErrTaskNotFound = &Exception{
	Kind:    KindNotFound,
	Message: "task not found",
}
