package model

import "time"

type Subscription struct {
	Meta
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billingCycle"`
	IsEnabled    bool    `json:"isEnabled"`
	WebsiteLink  *string `json:"websiteLink"`
}

func (s Subscription) WithMetadata(m Meta) Subscription {
	s.Meta = m
	return s
}

type SubscriptionInput struct {
	Name         *string  `json:"name" binding:"required"`
	Price        *float64 `json:"price" binding:"required"`
	BillingCycle *string  `json:"billingCycle" binding:"required"`
	IsEnabled    *bool    `json:"isEnabled" binding:"required"`
	WebsiteLink  *string  `json:"websiteLink" binding:"omitempty,url"`
}

func (in SubscriptionInput) Record() Subscription {
	return Subscription{
		Name:         value(in.Name),
		Price:        value(in.Price),
		BillingCycle: value(in.BillingCycle),
		IsEnabled:    value(in.IsEnabled),
		WebsiteLink:  in.WebsiteLink,
	}
}

type SubscriptionPatch struct {
	Name         Optional[string]  `json:"name"`
	Price        Optional[float64] `json:"price"`
	BillingCycle Optional[string]  `json:"billingCycle"`
	IsEnabled    Optional[bool]    `json:"isEnabled"`
	WebsiteLink  Optional[*string] `json:"websiteLink"`
}

func (p SubscriptionPatch) Apply(s Subscription) Subscription {
	s.Name = p.Name.Or(s.Name)
	s.Price = p.Price.Or(s.Price)
	s.BillingCycle = p.BillingCycle.Or(s.BillingCycle)
	s.IsEnabled = p.IsEnabled.Or(s.IsEnabled)
	s.WebsiteLink = p.WebsiteLink.Or(s.WebsiteLink)
	return s
}

type PaymentRecord struct {
	Meta
	SubscriptionID string    `json:"subscriptionId"`
	Amount         float64   `json:"amount"`
	PaymentDate    time.Time `json:"paymentDate"`
	PaymentStatus  string    `json:"paymentStatus"`
}

func (r PaymentRecord) WithMetadata(m Meta) PaymentRecord {
	r.Meta = m
	return r
}

type PaymentRecordInput struct {
	SubscriptionID *string    `json:"subscriptionId" binding:"required"`
	Amount         *float64   `json:"amount" binding:"required"`
	PaymentDate    *time.Time `json:"paymentDate" binding:"required"`
	PaymentStatus  *string    `json:"paymentStatus" binding:"required"`
}

func (in PaymentRecordInput) Record() PaymentRecord {
	return PaymentRecord{
		SubscriptionID: value(in.SubscriptionID),
		Amount:         value(in.Amount),
		PaymentDate:    value(in.PaymentDate),
		PaymentStatus:  value(in.PaymentStatus),
	}
}

type PaymentRecordPatch struct {
	SubscriptionID Optional[string]    `json:"subscriptionId"`
	Amount         Optional[float64]   `json:"amount"`
	PaymentDate    Optional[time.Time] `json:"paymentDate"`
	PaymentStatus  Optional[string]    `json:"paymentStatus"`
}

func (p PaymentRecordPatch) Apply(r PaymentRecord) PaymentRecord {
	r.SubscriptionID = p.SubscriptionID.Or(r.SubscriptionID)
	r.Amount = p.Amount.Or(r.Amount)
	r.PaymentDate = p.PaymentDate.Or(r.PaymentDate)
	r.PaymentStatus = p.PaymentStatus.Or(r.PaymentStatus)
	return r
}
