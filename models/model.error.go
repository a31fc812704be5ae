package models

import (
	"strings"

	"github.com/samber/lo"
)

type FieldViolation struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Path    string `json:"path"`
	Value   string `json:"value"`
}

// ConstraintError is returned by the persistence layer when a row breaks a
// column rule. Errors is reported to clients as the error details.
type ConstraintError struct {
	Errors []FieldViolation
}

func (e *ConstraintError) Error() string {
	messages := lo.Map(e.Errors, func(item FieldViolation, _ int) string {
		return item.Message
	})

	return "constraint error: " + strings.Join(messages, "; ")
}
