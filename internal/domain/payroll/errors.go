package payroll

import "errors"

var (
	ErrMonthRequired    = errors.New("payroll month is required")
	ErrCurrencyRequired = errors.New("currency is required")
	ErrRecordNotFound   = errors.New("salary record not found")
	ErrNoPatchFields    = errors.New("no patchable fields in request")
)
