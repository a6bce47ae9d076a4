package dto

// MessageResponse is the standard success envelope: {message, data?}
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope: {message, error?}
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewMessage creates a success envelope without data
func NewMessage(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewMessageWithData creates a success envelope carrying data
func NewMessageWithData(message string, data interface{}) MessageResponse {
	return MessageResponse{Message: message, Data: data}
}

// NewError creates an error envelope without an underlying error string
func NewError(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// NewErrorWithCause creates an error envelope carrying the underlying error
func NewErrorWithCause(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
