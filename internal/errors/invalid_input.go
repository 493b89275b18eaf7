package errors

var ErrMissingTaskFields = &Exception{
	Kind:    KindInvalidInput,
	Message: "title, description, due_date, priority and assigned_to are required",
}

var ErrDueDateInPast = &Exception{
	Kind:    KindInvalidInput,
	Message: "due date cannot be in the past",
}

var ErrInvalidDueDate = &Exception{
	Kind:    KindInvalidInput,
	Message: "due date must be YYYY-MM-DD or RFC 3339",
}

var ErrInvalidStatus = &Exception{
	Kind:    KindInvalidInput,
	Message: "status must be pending or completed",
}

var ErrInvalidPriority = &Exception{
	Kind:    KindInvalidInput,
	Message: "priority must be low, medium or high",
}

var ErrUnknownAssignee = &Exception{
	Kind:    KindInvalidInput,
	Message: "assigned user does not exist",
}

var ErrInvalidJSON = &Exception{
	Kind:    KindInvalidInput,
	Message: "invalid JSON payload",
}
