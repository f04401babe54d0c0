package payments

type Method string

const (
	MethodCreditCard   Method = "CREDIT_CARD"
	MethodDebitCard    Method = "DEBIT_CARD"
	MethodPaypal       Method = "PAYPAL"
	MethodBankTransfer Method = "BANK_TRANSFER"
)

// DefaultMethod is preselected on the payment step
const DefaultMethod = MethodCreditCard

func (m Method) IsValid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPaypal, MethodBankTransfer:
		return true
	}
	return false
}

func (m Method) String() string {
	return string(m)
}

type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusCanceled Status = "CANCELED"
	StatusFailed   Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}
