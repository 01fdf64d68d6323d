package producer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

type OrderEvent string

const (
	OrderEventPlaced        OrderEvent = "order_placed"
	OrderEventStatusChanged OrderEvent = "order_status_changed"
)

type orderEventPayload struct {
	Event     OrderEvent   `json:"event"`
	OrderID   string       `json:"order_id"`
	UserID    string       `json:"user_id,omitempty"`
	ProductID string       `json:"product_id,omitempty"`
	Quantity  int          `json:"quantity,omitempty"`
	Status    string       `json:"status,omitempty"`
	SessionID string       `json:"session_id,omitempty"`
	Timestamp int64        `json:"timestamp"`
	Order     *model.Order `json:"order,omitempty"`
}

type IOrderEventProducer interface {
	OrderPlaced(ctx context.Context, order *model.Order) error
	OrderStatusChanged(ctx context.Context, orderID string, status model.OrderStatus) error
	Close() error
}

// KafkaOrderProducer 發佈訂單生命週期事件
type KafkaOrderProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

func NewKafkaOrderProducer(brokers []string, topic string) *KafkaOrderProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka order producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return &KafkaOrderProducer{writer: writer}
}

var _ IOrderEventProducer = (*KafkaOrderProducer)(nil)

func (p *KafkaOrderProducer) OrderPlaced(ctx context.Context, order *model.Order) error {
	return p.produce(ctx, orderEventPayload{
		Event:     OrderEventPlaced,
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID,
		ProductID: order.ProductID.Hex(),
		Quantity:  order.OrderedQuantity,
		Status:    string(order.Status),
		SessionID: order.SessionID,
		Timestamp: time.Now().UnixMilli(),
		Order:     order,
	})
}

func (p *KafkaOrderProducer) OrderStatusChanged(ctx context.Context, orderID string, status model.OrderStatus) error {
	return p.produce(ctx, orderEventPayload{
		Event:     OrderEventStatusChanged,
		OrderID:   orderID,
		Status:    string(status),
		Timestamp: time.Now().UnixMilli(),
	})
}

func (p *KafkaOrderProducer) produce(ctx context.Context, payload orderEventPayload) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OrderID),
		Value: value,
	})
}

func (p *KafkaOrderProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
