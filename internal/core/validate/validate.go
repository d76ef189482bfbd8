// Package validate provides shared validation functions. Validation failures
// happen before a command is built, so invalid input never reaches the task
// store.
package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskdeck/internal/core/task"
)

// TaskContent validates task content is non-empty after trimming whitespace.
func TaskContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// TaskContentField returns a criterio validator for task content.
func TaskContentField(field, content string) error {
	return criterio.Run(field, content, TaskContent)
}

// Priority validates a priority value.
func Priority(p string) error {
	if !task.Priority(p).Valid() {
		return fmt.Errorf("priority must be one of low, medium, high")
	}
	return nil
}

// Category validates a category value.
func Category(c string) error {
	if !task.Category(c).Valid() {
		return fmt.Errorf("category must be one of general, work, personal, study, health, shopping")
	}
	return nil
}

// Required validates a generic non-empty field.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// Email validates an email address shape.
func Email(value string) error {
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// SignupField runs the named validator for a signup form field.
func SignupField(field, value string, fn func(string) error) error {
	return criterio.Run(field, value, fn)
}
