package schema

// Static returns the built-in request list used when no spreadsheet is
// configured. Section keys match the shareable-link flag names.
func Static() *Schema {
	s, err := New([]Section{
		{Key: "general", Fields: []Field{
			{Label: "Trial Balance", Description: "Trial balance as at year end"},
			{Label: "General Ledger", Description: "Full general ledger for the period"},
			{Label: "Management Accounts", Description: "Monthly management accounts"},
		}},
		{Key: "statutoryRecord", Fields: []Field{
			{Label: "Annual Return", Description: "Latest annual return filed"},
			{Label: "Register of Members", Description: "Current register of members and directors"},
		}},
		{Key: "propertyPlantEquipment", Fields: []Field{
			{Label: "Fixed Asset Register", Description: "Fixed asset register with additions and disposals"},
			{Label: "Depreciation Schedule", Description: "Depreciation schedule for the period"},
		}},
		{Key: "accountsReceivables", Fields: []Field{
			{Label: "Aged Receivables", Description: "Aged receivables listing as at year end"},
			{Label: "Credit Notes", Description: "Credit notes issued after year end"},
		}},
		{Key: "cashAndEquivalent", Fields: []Field{
			{Label: "Bank Statements", Description: "Bank statements covering the full period"},
			{Label: "Bank Reconciliations", Description: "Bank reconciliations as at year end"},
		}},
		{Key: "accountsPayables", Fields: []Field{
			{Label: "Aged Payables", Description: "Aged payables listing as at year end"},
			{Label: "Supplier Statements", Description: "Major supplier statements as at year end"},
		}},
		{Key: "revenue", Fields: []Field{
			{Label: "Sales Listing", Description: "Detailed sales listing for the period"},
		}},
		{Key: "adminExpense", Fields: []Field{
			{Label: "Expense Breakdown", Description: "Administrative expense breakdown by category"},
		}},
		{Key: "payroll", Fields: []Field{
			{Label: "Salary Breakdown", Description: "Monthly salary breakdown by employee"},
			{Label: "MPF Statements", Description: "Retirement scheme contribution statements"},
		}},
		{Key: "others", Fields: []Field{
			{Label: "Other Documents", Description: "Any other supporting documents"},
		}},
		{Key: "consolidation", Fields: []Field{
			{Label: "Subsidiary Accounts", Description: "Audited accounts of subsidiaries"},
		}},
	})
	if err != nil {
		// The static table is compiled in; a key collision here is a bug.
		panic(err)
	}
	return s
}
