package domain

// AccountType categorizes an account.
type AccountType string

const (
	Chequing   AccountType = "chequing"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit_card"
	Loan       AccountType = "loan"
	Other      AccountType = "other"
)

// IsValid reports whether the account type is one of the defined variants.
func (t AccountType) IsValid() bool {
	switch t {
	case Chequing, Savings, CreditCard, Loan, Other:
		return true
	}
	return false
}

// TransactionKind is the direction of a transaction's effect on a balance.
type TransactionKind string

const (
	// Credit increases the account balance.
	Credit TransactionKind = "credit"
	// Expense decreases the account balance.
	Expense TransactionKind = "expense"
)

// IsValid reports whether the kind is one of the two defined variants.
func (k TransactionKind) IsValid() bool {
	return k == Credit || k == Expense
}
