package domain

// GLAccountType defines the fundamental accounting type of a ledger account.
type GLAccountType string

const (
	Asset     GLAccountType = "ASSET"
	Liability GLAccountType = "LIABILITY"
	Equity    GLAccountType = "EQUITY"
	Income    GLAccountType = "INCOME"
	Expense   GLAccountType = "EXPENSE"
)

// GLAccount is a general ledger account that product mappings point at.
type GLAccount struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	GLCode      string        `json:"glCode"`
	AccountType GLAccountType `json:"accountType"`
	Disabled    bool          `json:"disabled"`
	AuditFields
}

// FinancialActivity names the role a mapped GL account plays for a deposit product.
type FinancialActivity string

const (
	SavingsReferenceActivity    FinancialActivity = "SAVINGS_REFERENCE"
	SavingsControlActivity      FinancialActivity = "SAVINGS_CONTROL"
	InterestOnSavingsActivity   FinancialActivity = "INTEREST_ON_SAVINGS"
	IncomeFromFeesActivity      FinancialActivity = "INCOME_FROM_FEES"
	IncomeFromPenaltiesActivity FinancialActivity = "INCOME_FROM_PENALTIES"
	TransfersSuspenseActivity   FinancialActivity = "TRANSFERS_SUSPENSE"
)

// CashAccountingActivity binds a command parameter to the activity it maps and
// the GL account type the mapped account must have.
type CashAccountingActivity struct {
	Param       string
	Activity    FinancialActivity
	AccountType GLAccountType
}

// CashBasedSavingsActivities lists the mappings a cash based deposit product needs.
var CashBasedSavingsActivities = []CashAccountingActivity{
	{Param: SavingsReferenceAccountIDParam, Activity: SavingsReferenceActivity, AccountType: Asset},
	{Param: SavingsControlAccountIDParam, Activity: SavingsControlActivity, AccountType: Liability},
	{Param: InterestOnSavingsAccountIDParam, Activity: InterestOnSavingsActivity, AccountType: Expense},
	{Param: IncomeFromFeeAccountIDParam, Activity: IncomeFromFeesActivity, AccountType: Income},
	{Param: IncomeFromPenaltyAccountIDParam, Activity: IncomeFromPenaltiesActivity, AccountType: Income},
	{Param: TransfersInSuspenseAccountIDParam, Activity: TransfersSuspenseActivity, AccountType: Liability},
}

// ProductGLMapping links one financial activity of a product to a GL account.
type ProductGLMapping struct {
	ID          int64              `json:"id"`
	ProductID   int64              `json:"productId"`
	ProductType DepositAccountType `json:"productType"`
	Activity    FinancialActivity  `json:"financialActivity"`
	GLAccountID int64              `json:"glAccountId"`
}
