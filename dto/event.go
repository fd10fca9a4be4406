package dto

import "github.com/replyradar/replyradar/internal/enum"

type Event struct {
	Event    EventDetails  `json:"event"`
	Metadata EventMetadata `json:"metadata"`
}

type EventDetails struct {
	Id         string          `json:"id"`
	EntityId   string          `json:"entityId"`
	EntityType enum.EntityType `json:"entityType"`
	EventType  string          `json:"eventType"`
	Data       interface{}     `json:"data"`
}

type EventMetadata struct {
	UberTraceId string `json:"uberTraceId"`
	UserId      string `json:"userId"`
	UserEmail   string `json:"userEmail"`
	Timestamp   string `json:"timestamp"`
}

// EventCompleted is the fanout notification emitted after an entity changes.
type EventCompleted struct {
	UserId     string          `json:"userId"`
	EntityType enum.EntityType `json:"entityType"`
	EntityIds  []string        `json:"entityIds"`
	Create     bool            `json:"create"`
	Update     bool            `json:"update"`
	Delete     bool            `json:"delete"`
}
