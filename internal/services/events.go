package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"notemind-backend/internal/models"
)

// EventPublisher pushes note lifecycle events onto the per-user
// pub/sub channel consumed by the WebSocket hub.
type EventPublisher struct {
	redis *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redis: redisClient}
}

func (p *EventPublisher) PublishNoteEvent(ctx context.Context, userID uuid.UUID, eventType string, note *models.Note) {
	if p == nil || p.redis == nil {
		return
	}
	data, err := json.Marshal(models.WSMessage{Type: eventType, Payload: note})
	if err != nil {
		return
	}
	p.redis.Publish(ctx, fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}
