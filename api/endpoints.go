package api

import (
	"net/url"
)

// Backend endpoint paths, relative to the configured base URL.
const (
	AuthLogin   = "/auth/login/"
	AuthRefresh = "/auth/refresh/"
	AuthLogout  = "/auth/logout/"
	AuthVerify  = "/auth/verify/"

	Users               = "/users/"
	UsersProfile        = "/users/profile/"
	UsersChangePassword = "/users/change-password/"
	UsersPermissions    = "/users/permissions/"

	Roles           = "/roles/"
	RolesAssign     = "/roles/assign/"
	RolesBulkAssign = "/roles/bulk-assign/"
	UserRoles       = "/user-roles/"
	Permissions     = "/permissions/"

	Organizations = "/organizations/"

	SDT           = "/sdt/"
	SDTMonitoring = "/sdt/monitoring/"

	Customers       = "/customers/"
	CustomersSearch = "/customers/search/"

	BillingInvoices        = "/billing/invoices/"
	BillingPayments        = "/billing/payments/"
	BillingReports         = "/billing/reports/"
	BillingGenerateInvoice = "/billing/generate-invoice/"
	BillingProcessPayment  = "/billing/process-payment/"

	NetworkInterfaces  = "/network/interfaces/"
	NetworkConnections = "/network/connections/"
	NetworkStats       = "/network/stats/"
	NetworkMonitoring  = "/network/monitoring/"

	ReportsRevenue   = "/reports/revenue/"
	ReportsCustomers = "/reports/customers/"
	ReportsNetwork   = "/reports/network/"
	ReportsExport    = "/reports/export/"
)

// Detail returns the path of a single resource in collection.
func Detail(collection string, id ID) string {
	return collection + url.PathEscape(id.String()) + "/"
}

// Action returns the path of a named action on a single resource, such as
// /sdt/12/approve/.
func Action(collection string, id ID, action string) string {
	return Detail(collection, id) + action + "/"
}
