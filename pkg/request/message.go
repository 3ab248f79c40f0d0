package request

import "fmt"

// Message is a plain message response body.
type Message struct {
	Message string `json:"Message"`
}

// NewMessage creates a new Message, formatting it when args are given.
func NewMessage(message string, args ...any) *Message {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return &Message{
		Message: message,
	}
}

// MessageError is a message response that also carries the error behind it.
type MessageError struct {
	Message string `json:"Message"`
	Error   string `json:"Error"`
}

func NewMessageError(message string, err error) *MessageError {
	return &MessageError{
		Message: message,
		Error:   err.Error(),
	}
}
