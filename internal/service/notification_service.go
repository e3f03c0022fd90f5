package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
)

type INotificationService interface {
	SendOrderConfirmation(ctx context.Context, orderID uint) error
}

// NotificationService 渲染訂單確認信並交給 kafka
// 實際寄送由外部通知服務消費 topic 完成
type NotificationService struct {
	store    db.UnifiedDB
	producer producer.INotificationProducer
}

func NewNotificationService(store db.UnifiedDB, notificationProducer producer.INotificationProducer) *NotificationService {
	return &NotificationService{store: store, producer: notificationProducer}
}

func (n *NotificationService) SendOrderConfirmation(ctx context.Context, orderID uint) error {
	order, err := n.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	user, err := n.store.GetUserByID(ctx, order.UserID)
	if err != nil {
		return err
	}

	currency := order.Payment.Currency

	var rows strings.Builder
	for _, item := range order.OrderItems {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>%s %s</td></tr>",
			item.Product.Name, item.Quantity, item.Price.StringFixed(2), currency))
	}

	htmlBody := fmt.Sprintf(`<h2>感謝您的訂購</h2>
<p>訂單編號：%s</p>
<table border="1" cellpadding="4">
<tr><th>商品</th><th>數量</th><th>小計</th></tr>
%s
<tr><td colspan="2"><b>總計</b></td><td><b>%s %s</b></td></tr>
</table>`,
		order.OrderNumber, rows.String(), order.Amount.StringFixed(2), currency)

	return n.producer.ProduceNotification(ctx, producer.NotificationMessage{
		Recipient: user.UserEmail,
		Subject:   fmt.Sprintf("訂單確認 %s", order.OrderNumber),
		HtmlBody:  htmlBody,
	})
}

var _ INotificationService = (*NotificationService)(nil)
