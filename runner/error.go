package runner

import "fmt"

// ScriptError is an exception that escaped the script, or a promise
// rejection nobody handled.
type ScriptError struct {
	Name    string
	Message string
	// stack trace as reported by the VM, may be empty
	Stack     string
	Rejection bool
}

func (e *ScriptError) Error() string {
	if e.Rejection {
		return fmt.Sprintf("%s: unhandled promise rejection: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("%s: uncaught exception: %s", e.Name, e.Message)
}
