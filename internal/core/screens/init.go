// Package screens registers the built-in CRM screens with the core registry.
// Import this package to ensure all screens are registered.
package screens

// Enum values shared by screen definitions and the demo seeder.
var (
	Industries        = []string{"Software", "Manufacturing", "Healthcare", "Finance", "Retail"}
	ClientStatuses    = []string{"Active", "Prospect", "Churned"}
	LeadSources       = []string{"Website", "Referral", "Event", "Outbound"}
	LeadStatuses      = []string{"New", "Contacted", "Qualified", "Disqualified"}
	OpportunityStages = []string{"Discovery", "Proposal", "Negotiation", "Closed Won", "Closed Lost"}
	RFPStatuses       = []string{"Draft", "Submitted", "Won", "Lost"}
	SOWStatuses       = []string{"Draft", "Signed", "Active", "Completed"}
	UserRoles         = []string{"Admin", "Manager", "Sales Rep", "Viewer"}
)

// Navigation groups.
const (
	GroupSales    = "Sales"
	GroupDelivery = "Delivery"
	GroupAdmin    = "Admin"
)
