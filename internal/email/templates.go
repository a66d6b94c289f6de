package email

import (
	"fmt"
	"strings"
)

// OrderItem is an order line rendered into email bodies.
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// BuildOrderConfirmationBody builds the HTML body for the confirmation email.
func BuildOrderConfirmationBody(orderID string, total float64, items []OrderItem) string {
	var itemsHTML strings.Builder
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.ProductID
		}
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			name,
			item.Quantity,
			FormatAmount(item.Price),
			FormatAmount(item.Price*float64(item.Quantity)),
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #b5651d 0%%, #8d4004 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Thank you for your order</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Your order has been placed and the artisans have been notified.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #b5651d; padding-bottom: 10px;">Order details</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left; font-weight: 600;">Item</th>
					<th style="padding: 12px; text-align: center; font-weight: 600;">Qty</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Price</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Subtotal</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<span style="font-size: 14px; color: #666;">Total</span>
			<span style="font-size: 24px; font-weight: bold; color: #b5651d; margin-left: 10px;">%s</span>
		</div>

		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			This is an automated message. If anything looks wrong, please contact support.
		</p>
	</div>
</body>
</html>`, orderID, itemsHTML.String(), FormatAmount(total))
}

// BuildStatusUpdateBody builds the HTML body for a status-change email.
func BuildStatusUpdateBody(orderID, status string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 20px;">Order update</h1>
	<p>Your order <span style="font-family: monospace; font-weight: bold;">%s</span> is now <strong>%s</strong>.</p>
	<p style="font-size: 12px; color: #999;">This is an automated message.</p>
</body>
</html>`, orderID, status)
}

// BuildCancellationBody builds the HTML body for a cancellation email.
func BuildCancellationBody(orderID string, total float64) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 20px;">Order cancelled</h1>
	<p>Your order <span style="font-family: monospace; font-weight: bold;">%s</span> (%s) has been cancelled and all items have been returned to stock.</p>
	<p>If you already paid online, the refund will be processed within 5-7 business days.</p>
	<p style="font-size: 12px; color: #999;">This is an automated message.</p>
</body>
</html>`, orderID, FormatAmount(total))
}

// FormatAmount renders an INR amount with the rupee sign and Indian digit
// grouping (12,34,567.00).
func FormatAmount(amount float64) string {
	whole := int64(amount)
	frac := int64((amount-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}
	return fmt.Sprintf("₹%s.%02d", groupIndian(whole), frac)
}

// groupIndian inserts separators after the last three digits and then every
// two: 1234567 -> 12,34,567.
func groupIndian(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	head := str[:len(str)-3]
	tail := str[len(str)-3:]

	var result strings.Builder
	remainder := len(head) % 2
	if remainder > 0 {
		result.WriteString(head[:remainder])
		result.WriteString(",")
	}
	for i := remainder; i < len(head); i += 2 {
		result.WriteString(head[i : i+2])
		result.WriteString(",")
	}
	result.WriteString(tail)
	return result.String()
}
