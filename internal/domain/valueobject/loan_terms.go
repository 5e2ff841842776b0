package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PaymentFrequency – immutable value object
// ---------------------------------------------------------------------------

// PaymentFrequency is the cadence at which installments fall due.
type PaymentFrequency struct {
	value string
}

const (
	frequencyWeekly    = "WEEKLY"
	frequencyBiweekly  = "BIWEEKLY"
	frequencyMonthly   = "MONTHLY"
	frequencyBimonthly = "BIMONTHLY"
	frequencyQuarterly = "QUARTERLY"
)

var (
	FrequencyWeekly    = PaymentFrequency{value: frequencyWeekly}
	FrequencyBiweekly  = PaymentFrequency{value: frequencyBiweekly}
	FrequencyMonthly   = PaymentFrequency{value: frequencyMonthly}
	FrequencyBimonthly = PaymentFrequency{value: frequencyBimonthly}
	FrequencyQuarterly = PaymentFrequency{value: frequencyQuarterly}
)

var validFrequencies = map[string]PaymentFrequency{
	frequencyWeekly:    FrequencyWeekly,
	frequencyBiweekly:  FrequencyBiweekly,
	frequencyMonthly:   FrequencyMonthly,
	frequencyBimonthly: FrequencyBimonthly,
	frequencyQuarterly: FrequencyQuarterly,
}

// NewPaymentFrequency creates a PaymentFrequency from a raw string.
func NewPaymentFrequency(s string) (PaymentFrequency, error) {
	v, ok := validFrequencies[s]
	if !ok {
		return PaymentFrequency{}, fmt.Errorf("invalid payment frequency: %q", s)
	}
	return v, nil
}

// String returns the string representation of the frequency.
func (f PaymentFrequency) String() string { return f.value }

// IsZero returns true if the frequency has not been initialised.
func (f PaymentFrequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies carry the same value.
func (f PaymentFrequency) Equal(other PaymentFrequency) bool { return f.value == other.value }

// PeriodsPerYear returns the number of payment periods in a year.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f.value {
	case frequencyWeekly:
		return 52
	case frequencyBiweekly:
		return 26
	case frequencyMonthly:
		return 12
	case frequencyBimonthly:
		return 6
	case frequencyQuarterly:
		return 4
	default:
		return 0
	}
}

// Step returns the calendar advance between consecutive due dates as
// (days, months). Exactly one of the two is non-zero.
func (f PaymentFrequency) Step() (days, months int) {
	switch f.value {
	case frequencyWeekly:
		return 7, 0
	case frequencyBiweekly:
		return 14, 0
	case frequencyMonthly:
		return 0, 1
	case frequencyBimonthly:
		return 0, 2
	case frequencyQuarterly:
		return 0, 3
	default:
		return 0, 0
	}
}

// ---------------------------------------------------------------------------
// AmortizationMethod – immutable value object
// ---------------------------------------------------------------------------

// AmortizationMethod selects how capital and interest are spread across
// the schedule.
type AmortizationMethod struct {
	value string
}

const (
	methodFrench   = "FRENCH"
	methodGerman   = "GERMAN"
	methodAmerican = "AMERICAN"
)

var (
	MethodFrench   = AmortizationMethod{value: methodFrench}
	MethodGerman   = AmortizationMethod{value: methodGerman}
	MethodAmerican = AmortizationMethod{value: methodAmerican}
)

var validMethods = map[string]AmortizationMethod{
	methodFrench:   MethodFrench,
	methodGerman:   MethodGerman,
	methodAmerican: MethodAmerican,
}

// NewAmortizationMethod creates an AmortizationMethod from a raw string.
func NewAmortizationMethod(s string) (AmortizationMethod, error) {
	v, ok := validMethods[s]
	if !ok {
		return AmortizationMethod{}, fmt.Errorf("invalid amortization method: %q", s)
	}
	return v, nil
}

// String returns the string representation of the method.
func (m AmortizationMethod) String() string { return m.value }

// IsZero returns true if the method has not been initialised.
func (m AmortizationMethod) IsZero() bool { return m.value == "" }

// Equal returns true when both methods carry the same value.
func (m AmortizationMethod) Equal(other AmortizationMethod) bool { return m.value == other.value }

// ---------------------------------------------------------------------------
// AllocationPolicy – immutable value object
// ---------------------------------------------------------------------------

// AllocationPolicy selects the order in which installments receive a
// payment. The per-installment waterfall (mora, interest, capital) is
// fixed and not part of the policy.
type AllocationPolicy struct {
	value string
}

const (
	policySequential   = "SEQUENTIAL"
	policyOverdueFirst = "OVERDUE_FIRST"
)

var (
	PolicySequential   = AllocationPolicy{value: policySequential}
	PolicyOverdueFirst = AllocationPolicy{value: policyOverdueFirst}
)

var validPolicies = map[string]AllocationPolicy{
	policySequential:   PolicySequential,
	policyOverdueFirst: PolicyOverdueFirst,
}

// NewAllocationPolicy creates an AllocationPolicy from a raw string.
func NewAllocationPolicy(s string) (AllocationPolicy, error) {
	v, ok := validPolicies[s]
	if !ok {
		return AllocationPolicy{}, fmt.Errorf("invalid allocation policy: %q", s)
	}
	return v, nil
}

// String returns the string representation of the policy.
func (p AllocationPolicy) String() string { return p.value }

// IsZero returns true if the policy has not been initialised.
func (p AllocationPolicy) IsZero() bool { return p.value == "" }

// Equal returns true when both policies carry the same value.
func (p AllocationPolicy) Equal(other AllocationPolicy) bool { return p.value == other.value }
