package submission

// Messages returned by the submission endpoint.
const (
	MessageSubmitted      = "Form submitted successfully"
	MessageDeliveryFailed = "Failed to send email"
	MessageInvalid        = "Invalid submission"
)

// Result is the endpoint response body. Callers treat a non-2xx status or
// Success=false as failure.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Field names the offending input on validation failures.
	Field string `json:"field,omitempty"`
}

// Succeeded is the canonical success result.
func Succeeded() Result {
	return Result{Success: true, Message: MessageSubmitted}
}

// Failed returns a failure result carrying message.
func Failed(message string) Result {
	return Result{Success: false, Message: message}
}
