package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/leadpilot/leadpilot/internal/entity"
)

// NotificationMailer sends the email copy of a critical alert.
type NotificationMailer interface {
	SendNotification(to, name, subject, message string) error
}

// Worker drains the notification queue: every event becomes a Notification
// row, and failure alerts additionally go out by email.
type Worker struct {
	Channel       *amqp.Channel
	Notifications entity.NotificationRepositoryInterface
	Users         entity.UserRepositoryInterface
	Mailer        NotificationMailer
}

func NewWorker(ch *amqp.Channel, notifications entity.NotificationRepositoryInterface, users entity.UserRepositoryInterface, mailer NotificationMailer) *Worker {
	return &Worker{
		Channel:       ch,
		Notifications: notifications,
		Users:         users,
		Mailer:        mailer,
	}
}

var mailedTypes = map[string]bool{
	entity.NotificationEnrichmentFailed: true,
	entity.NotificationEmailFailed:      true,
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("[WORKER] consume %s: %s", queueName, err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event NotificationEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Printf("[WORKER] malformed event, sending to DLQ: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.processEvent(context.Background(), event); err != nil {
				log.Printf("[WORKER] failed to process %s for user %s: %s", event.Type, event.UserID, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[WORKER] waiting on queue %q", queueName)
	<-forever
}

func (w *Worker) processEvent(ctx context.Context, event NotificationEvent) error {
	n := entity.NewNotification(event.UserID, event.Type, event.Message)
	if !event.EmittedAt.IsZero() {
		n.CreatedAt = event.EmittedAt
	}

	if err := w.Notifications.Create(ctx, n); err != nil {
		return err
	}

	if !mailedTypes[event.Type] || w.Mailer == nil {
		return nil
	}

	user, err := w.Users.FindByID(ctx, event.UserID)
	if err != nil {
		// The alert row is already persisted; the email copy is best effort.
		log.Printf("[WORKER] user %s not found for email alert: %s", event.UserID, err)
		return nil
	}

	if err := w.Mailer.SendNotification(user.Email, user.Name, "LeadPilot alert", event.Message); err != nil {
		log.Printf("[WORKER] email alert to %s failed: %s", user.Email, err)
	}
	return nil
}
