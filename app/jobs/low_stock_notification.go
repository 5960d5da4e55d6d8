package jobs

import (
	"fmt"
	"strings"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/notification"
)

// LowStockNotification alerts the shop owner about items that need
// restocking. Sent by the daily sweep when ADMIN_EMAIL is configured; the
// Slack channel joins in when a webhook URL is set.
type LowStockNotification struct {
	Items []models.ClothItem
}

func (n *LowStockNotification) Via() []string {
	channels := []string{"mail"}
	if config.Get("SLACK_WEBHOOK_URL", "") != "" {
		channels = append(channels, "slack")
	}
	return channels
}

func (n *LowStockNotification) ToMail() notification.MailData {
	var rows strings.Builder
	for _, item := range n.Items {
		qty := 0
		if item.Stock != nil {
			qty = item.Stock.Quantity
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%d</td></tr>", item.SKU, item.Name, qty)
	}

	return notification.MailData{
		Subject: fmt.Sprintf("Low stock: %d items need restocking", len(n.Items)),
		Body: fmt.Sprintf(
			"<p>The following items are at or below their restock threshold:</p>"+
				"<table border=\"1\" cellpadding=\"4\"><tr><th>SKU</th><th>Item</th><th>On hand</th></tr>%s</table>",
			rows.String()),
	}
}

func (n *LowStockNotification) ToSlack() notification.SlackData {
	names := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		names = append(names, item.Name)
	}

	return notification.SlackData{
		WebhookURL: config.Get("SLACK_WEBHOOK_URL", ""),
		Text:       fmt.Sprintf("%d items low on stock", len(n.Items)),
		Attachments: []notification.SlackAttachment{{
			Color: "warning",
			Title: "Restock needed",
			Text:  strings.Join(names, ", "),
		}},
	}
}
