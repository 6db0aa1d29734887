package payroll

const (
	CurrencyPKR = "PKR"
	CurrencyUSD = "USD"

	// Flat monthly allowance added to PKR base pay once probation is over.
	// Fixed by payroll policy, not derived from the base figure.
	PostProbationAllowancePKR = 21.0

	SalaryStatusReleased = "Released"
	SalaryStatusHold     = "HOLD"

	PayslipStatusNotSent = "Not Sent"

	SkipReasonNoBasePay    = "no_resolvable_base_pay"
	SkipReasonNoIdentifier = "unresolved_identifier"
)
