package constants

const (
	ViewHorses         = "view_horses"
	ManageHorses       = "manage_horses"
	UpdatePerformance  = "update_performance"
	ManageFinancials   = "manage_financials"
	PurchaseShares     = "purchase_shares"
	ManageUsers        = "manage_users"
	ManageTaxDocuments = "manage_tax_documents"
	ViewTaxDocuments   = "view_tax_documents"

	// Grants access to other members' records; without it callers are limited to their own id.
	ViewAnyHoldings     = "view_any_holdings"
	PurchaseForMembers  = "purchase_for_members"
	ViewAnyTaxDocuments = "view_any_tax_documents"
)
