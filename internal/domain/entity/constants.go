package entity

// Payment type constants
const (
	PaymentTypePayment = "payment"
	PaymentTypeRefund  = "refund"
)

// Entity ID prefixes. Every persisted row gets a short generated ID starting
// with the prefix letter of its kind.
const (
	PrefixContact = 'c'
	PrefixAddress = 'a'
	PrefixItem    = 't'
	PrefixInvoice = 'i'
	PrefixPayment = 'p'
)
