package mailer

import (
	"fmt"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// OrderDelivered notifies the customer that an order has been delivered.
func OrderDelivered(order model.Order) Message {
	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Your %s order was delivered", order.Restaurant.Name),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your order of %s from %s was delivered. Enjoy!</p>",
			order.Customer.FirstName, order.Item.Name, order.Restaurant.Name,
		),
	}
}

// OrderArchived notifies the customer that an order was cancelled by the
// vendor or an admin before delivery.
func OrderArchived(order model.Order) Message {
	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Your %s order was cancelled", order.Restaurant.Name),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your order of %s from %s was cancelled. Please contact support for details.</p>",
			order.Customer.FirstName, order.Item.Name, order.Restaurant.Name,
		),
	}
}

// OrderReminder nudges a customer who has not ordered for next week yet.
func OrderReminder(email string) Message {
	return Message{
		To:      email,
		Subject: "Don't forget to order lunch for next week",
		HTML:    "<p>Ordering for next week closes soon. Pick your meals now!</p>",
	}
}
