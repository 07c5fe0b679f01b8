// Package commonv1 holds the messages shared by the back-office services.
package commonv1

// Location is a coordinate with the time it was reported.
type Location struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// Order is the back-office view of an order.
type Order struct {
	Id               string            `json:"id"`
	CustomerName     string            `json:"customer_name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone,omitempty"`
	Address          string            `json:"address,omitempty"`
	DesignId         string            `json:"design_id,omitempty"`
	DesignTitle      string            `json:"design_title"`
	Amount           string            `json:"amount"`
	Status           string            `json:"status"`
	PaymentStatus    string            `json:"payment_status"`
	PaymentMethod    string            `json:"payment_method"`
	DeliveryStatus   string            `json:"delivery_status"`
	AssignedTo       *int64            `json:"assigned_to,omitempty"`
	Measurements     map[string]string `json:"measurements,omitempty"`
	DeliveryLocation *Location         `json:"delivery_location,omitempty"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}

func (x *Order) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Order) GetDeliveryStatus() string {
	if x != nil {
		return x.DeliveryStatus
	}
	return ""
}

// Driver is a member of the delivery personnel. The password hash is never sent.
type Driver struct {
	Id              int64    `json:"id"`
	Name            string   `json:"name"`
	PersonnelNumber string   `json:"personnel_number"`
	Phone           string   `json:"phone,omitempty"`
	Status          string   `json:"status"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

func (x *Driver) GetId() int64 {
	if x != nil {
		return x.Id
	}
	return 0
}
