package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var ErrNoPermission = &CustomError{"You do not have permission to perform this action"}
