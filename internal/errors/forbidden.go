package errors

var ErrNotTaskParticipant = &Exception{
	Kind:    KindForbidden,
	Message: "not authorized to access this task",
}

var ErrNotTaskCreator = &Exception{
	Kind:    KindForbidden,
	Message: "only the task creator can delete this task",
}
