package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fadu-store/internal/qr"
	"fadu-store/internal/service"

	"github.com/segmentio/kafka-go"
)

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// EmailProducer публикует email-события заказа в Kafka; их забирает
// cmd/notifier. Реализует service.EventBus.
type EmailProducer struct {
	writer *kafka.Writer
}

func NewEmailProducer(brokers []string, topic string) *EmailProducer {
	return &EmailProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *EmailProducer) PublishOrderConfirmed(ctx context.Context, e service.OrderConfirmedEvent) error {
	items := make([]map[string]any, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, map[string]any{
			"quantity":   it.Quantity,
			"line_total": service.FormatARS(it.LineTotalCents),
		})
	}
	return p.send(ctx, e.OrderID.String(), EmailMessage{
		To:       e.ContactEmail,
		Subject:  fmt.Sprintf("Pedido #%s confirmado — Fadu.store", e.PickupCode),
		Template: "order_confirmation",
		Data: map[string]any{
			"name":        e.ContactName,
			"pickup_code": e.PickupCode,
			"items":       items,
			"total":       service.FormatARS(e.TotalCents),
		},
	})
}

func (p *EmailProducer) PublishPickupReady(ctx context.Context, e service.PickupReadyEvent) error {
	qrDataURL, err := qr.DataURL(e.PickupCode)
	if err != nil {
		return err
	}
	return p.send(ctx, e.OrderID.String(), EmailMessage{
		To:       e.ContactEmail,
		Subject:  fmt.Sprintf("Retirá tu pedido #%s — Fadu.store", e.PickupCode),
		Template: "pickup_ready",
		Data: map[string]any{
			"name":        e.ContactName,
			"pickup_code": e.PickupCode,
			"qr":          qrDataURL,
		},
	})
}

func (p *EmailProducer) send(ctx context.Context, key string, msg EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *EmailProducer) Close() error { return p.writer.Close() }
