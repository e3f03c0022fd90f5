package producer

import (
	"context"
	"encoding/json"

	"github.com/RoyceAzure/lab/rj_kafka/kafka/message"
	"github.com/RoyceAzure/lab/rj_kafka/kafka/producer"
)

// NotificationMessage 外部通知服務消費的郵件任務
type NotificationMessage struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	HtmlBody  string `json:"html_body"`
}

type INotificationProducer interface {
	ProduceNotification(ctx context.Context, notification NotificationMessage) error
}

// topic: 由producer創建時設置
type NotificationProducer struct {
	producer producer.Producer
}

func NewNotificationProducer(producer producer.Producer) *NotificationProducer {
	return &NotificationProducer{producer: producer}
}

// ProduceNotification 發佈通知任務，以收件人作為分區鍵
func (n *NotificationProducer) ProduceNotification(ctx context.Context, notification NotificationMessage) error {
	value, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	msg := message.Message{
		Key:   []byte(notification.Recipient),
		Value: value,
		Headers: []message.Header{
			{
				Key:   "notification_type",
				Value: []byte("order_confirmation"),
			},
		},
	}

	return n.producer.Produce(ctx, []message.Message{msg})
}

var _ INotificationProducer = (*NotificationProducer)(nil)
