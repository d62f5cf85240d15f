package billterm

import (
	"github.com/mvirtane/billterm/billing"
	"github.com/mvirtane/billterm/client"
)

// sessionMsg carries the token restored from the store at startup. An empty
// token means the user has to log in.
type sessionMsg struct {
	token string
}

// loginResultMsg is the outcome of a login attempt.
type loginResultMsg struct {
	session client.Session
	err     error
}

// loggedOutMsg is sent once the stored token has been cleared.
type loggedOutMsg struct{}

// dashboardDataMsg carries a fresh dashboard snapshot. seq identifies the
// activation that requested it; a stale seq means the user has already moved
// on and the data is dropped.
type dashboardDataMsg struct {
	seq     int
	summary billing.DashboardSummary
	err     error
}

// invoicesDataMsg carries a fresh invoice snapshot.
type invoicesDataMsg struct {
	seq      int
	invoices []billing.Invoice
	err      error
}

// productsDataMsg carries a fresh product snapshot.
type productsDataMsg struct {
	seq      int
	products []billing.Product
	err      error
}

// productSavedMsg is the outcome of a product create or update.
type productSavedMsg struct {
	created bool
	err     error
}

// productDeletedMsg is the outcome of a product delete.
type productDeletedMsg struct {
	err error
}

// staffDataMsg carries a fresh staff snapshot.
type staffDataMsg struct {
	seq   int
	staff []billing.Staff
	err   error
}

// staffSavedMsg is the outcome of a staff create or update.
type staffSavedMsg struct {
	created bool
	err     error
}

// staffDeletedMsg is the outcome of a staff delete.
type staffDeletedMsg struct {
	err error
}

// reportKind tells which reports pane a reportDataMsg belongs to.
type reportKind int

const (
	reportDaily reportKind = iota
	reportRange
)

// reportDataMsg carries a fetched daily or range report.
type reportDataMsg struct {
	seq    int
	kind   reportKind
	report billing.Report
	err    error
}

// exportDoneMsg is the outcome of an xlsx export.
type exportDoneMsg struct {
	view int
	path string
	err  error
}
