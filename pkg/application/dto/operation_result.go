package dto

import (
	"fmt"
)

// OperationResult is what a mutating operation reports at the UI boundary.
// Validation and lookup failures become Success=false with a readable message.
type OperationResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Succeeded builds a successful result
func Succeeded(data interface{}, format string, args ...interface{}) OperationResult {
	return OperationResult{Success: true, Message: fmt.Sprintf(format, args...), Data: data}
}

// ResultFrom converts an operation outcome into an OperationResult
func ResultFrom(data interface{}, err error) OperationResult {
	if err != nil {
		return OperationResult{Success: false, Message: err.Error()}
	}
	return OperationResult{Success: true, Message: "ok", Data: data}
}
