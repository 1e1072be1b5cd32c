package rules

// Adult age bounds, inclusive. Shared by VerifyAge and CheckFlightEligibility.
const (
	MinAdultAge = 18
	MaxAdultAge = 65
)

// Age verification results.
const (
	AgeEligible    = "Eligible"
	AgeNotEligible = "Not Eligible"
)

func adult(age int) bool {
	return age >= MinAdultAge && age <= MaxAdultAge
}

// VerifyAge reports whether age lies within [MinAdultAge, MaxAdultAge].
func VerifyAge(age int) string {
	if adult(age) {
		return AgeEligible
	}
	return AgeNotEligible
}

// Flight booking results.
const (
	EligibleToBook    = "Eligible to Book"
	NotEligibleToBook = "Not Eligible to Book"
)

// CheckFlightEligibility lets frequent flyers book at any age; everyone else
// must be within the adult age bounds.
func CheckFlightEligibility(age int, frequentFlyer bool) string {
	if frequentFlyer || adult(age) {
		return EligibleToBook
	}
	return NotEligibleToBook
}

// Loan income and credit score thresholds.
const (
	LoanMinIncome         = 30000.0
	LoanStandardIncomeMax = 60000.0
	StandardTierMinScore  = 700 // exclusive
	PremiumTierMinScore   = 750 // exclusive
)

// Loan results.
const (
	LoanNotEligible = "Not Eligible"
	LoanSecured     = "Secured Loan"
	LoanStandard    = "Standard Loan"
	LoanPremium     = "Premium Loan"
)

// CheckLoanEligibility picks a loan product from income and credit score.
// Incomes up to LoanStandardIncomeMax get Standard above a 700 score and
// Secured otherwise; higher incomes get Premium above 750 and Standard
// otherwise.
func CheckLoanEligibility(income float64, creditScore int) string {
	switch {
	case income < LoanMinIncome:
		return LoanNotEligible
	case income <= LoanStandardIncomeMax:
		if creditScore > StandardTierMinScore {
			return LoanStandard
		}
		return LoanSecured
	}
	if creditScore > PremiumTierMinScore {
		return LoanPremium
	}
	return LoanStandard
}
