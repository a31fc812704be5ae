package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"
	UserDeleted EventType = "user.deleted"
)

type UserEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	User      User      `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func NewUserEvent(eventType EventType, user User) *UserEvent {
	return &UserEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		User:      user,
		Timestamp: time.Now().UTC(),
	}
}
