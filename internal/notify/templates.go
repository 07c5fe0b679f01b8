package notify

import (
	"bytes"
	"html/template"
	"strings"

	"tailoringStorefront/models"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #d4a373;">Order Confirmed!</h1>
  <p>Thank you for your order, {{.Name}}.</p>
  <div style="background: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Order ID:</strong> {{.ID}}</p>
    <p><strong>Design:</strong> {{.Design}}</p>
    <p><strong>Total Amount:</strong> &#8377;{{.Amount}}</p>
    <p><strong>Payment Method:</strong> {{.Method}}</p>
    <p><strong>Status:</strong> {{.Status}}</p>
  </div>
  <p>We will notify you when your garment is ready.</p>
  <p>Best regards,<br>The Elite Stitch World Team</p>
</div>`))

// OrderConfirmation renders the confirmation e-mail for o.
func OrderConfirmation(o *models.Order) (Message, error) {
	name := o.CustomerName
	if strings.TrimSpace(name) == "" {
		name = "Valued Customer"
	}
	short := o.ID
	if len(short) > 8 {
		short = short[:8]
	}
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, map[string]string{
		"Name":   name,
		"ID":     o.ID,
		"Design": o.DesignTitle,
		"Amount": o.Amount.StringFixed(2),
		"Method": strings.ToUpper(string(o.PaymentMethod)),
		"Status": string(o.Status),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{To: o.Email, Subject: "Order Confirmation #" + short, HTML: buf.String()}, nil
}
