// Package billterm contains the implementation of a bubbletea application
// for administering the Smart Billing backend from a terminal: login,
// dashboard, invoice browsing with filters and xlsx export, product and
// staff management, and daily/range reports.
//
// New returns the application model that is ready to be passed into a new
// bubbletea program.
package billterm

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"

	"github.com/mvirtane/billterm/billing"
	"github.com/mvirtane/billterm/client"
)

// Backend is the slice of the billing API the application consumes. It is
// implemented by *client.Client; tests substitute a fake.
type Backend interface {
	Login(ctx context.Context, email, password string) (client.Session, error)
	SetToken(token string)
	Dashboard(ctx context.Context) (billing.DashboardSummary, error)
	Invoices(ctx context.Context) ([]billing.Invoice, error)
	Products(ctx context.Context) ([]billing.Product, error)
	CreateProduct(ctx context.Context, draft client.ProductDraft) error
	UpdateProduct(ctx context.Context, id string, draft client.ProductDraft) error
	DeleteProduct(ctx context.Context, id string) error
	Staff(ctx context.Context) ([]billing.Staff, error)
	CreateStaff(ctx context.Context, draft client.StaffDraft) error
	UpdateStaff(ctx context.Context, id string, draft client.StaffDraft) error
	DeleteStaff(ctx context.Context, id string) error
	DailyReport(ctx context.Context, date string) (billing.Report, error)
	RangeReport(ctx context.Context, from, to string) (billing.Report, error)
}

// TokenStore persists the bearer token between runs. Implemented by
// *session.Store.
type TokenStore interface {
	Token() (string, error)
	Save(token string) error
	Clear() error
}

// Option defines a function that configures the application. Use with New.
type Option func(app *BillTerm)

// UseLogger sets the logger for application. If nil, a logger based on
// slog.DiscardHandler is used as default. Never log to stderr while the
// program runs: bubbletea owns the terminal.
func UseLogger(l *slog.Logger) Option {
	return func(app *BillTerm) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		app.l = l
	}
}

// UseExportDir sets the directory xlsx exports are written into. Default is
// the current working directory.
func UseExportDir(dir string) Option {
	return func(app *BillTerm) {
		if dir != "" {
			app.exportDir = dir
		}
	}
}

// Views of the main section, in navigation order.
const (
	viewDashboard = iota
	viewInvoices
	viewProducts
	viewStaff
	viewReports
)

// state is the mutable application state. Each section owns its own
// snapshot; there is no shared cache between them.
type state struct {
	screenWidth   int
	screenHeight  int
	viewWidth     int
	viewHeight    int
	activeView    int
	ready         bool
	authed        bool
	confirmLogout bool
	showHelp      bool
	quitting      bool
	// status is a transient result line (export path, save confirmation,
	// failure message). Cleared on the next view activation.
	status    string
	statusErr bool

	login     loginState
	dashboard dashboardState
	invoices  invoicesState
	products  productsState
	staff     staffState
	reports   reportsState
}

// BillTerm is the billterm application model. Keeps track of the whole
// application state and implements tea.Model.
type BillTerm struct {
	api       Backend
	store     TokenStore
	l         *slog.Logger
	help      help.Model
	keys      keymap
	state     state
	viewNames []string
	exportDir string
}

// New returns an initialized BillTerm model that can be passed into a
// bubbletea program for running the billing admin application.
//
// api must be a working Backend, normally a *client.Client pointed at the
// backend. store holds the bearer token between runs.
//
// To use the returned model, call for example tea.NewProgram(model).Run()
func New(api Backend, store TokenStore, options ...Option) BillTerm {
	h := help.New()
	h.Styles = styleHelp

	app := BillTerm{
		api:       api,
		store:     store,
		l:         slog.New(slog.DiscardHandler),
		help:      h,
		keys:      newKeymap(),
		exportDir: ".",
		state: state{
			login:    newLoginState(),
			invoices: newInvoicesState(),
			products: newProductsState(),
			staff:    newStaffState(),
			reports:  newReportsState(),
		},
		viewNames: []string{
			"Dashboard",
			"Invoices",
			"Products",
			"Staff",
			"Reports",
		},
	}
	// apply options to customize the application.
	for _, opt := range options {
		opt(&app)
	}
	return app
}

// setStatus replaces the transient status line.
func (m *BillTerm) setStatus(text string, isErr bool) {
	m.state.status = text
	m.state.statusErr = isErr
}

// capturingInput reports whether a text input currently owns the keyboard,
// in which case single-letter shortcuts must not fire.
func (m BillTerm) capturingInput() bool {
	if !m.state.authed {
		return true
	}
	switch m.state.activeView {
	case viewInvoices:
		return m.state.invoices.picking
	case viewProducts:
		return m.state.products.mode == productModeForm
	case viewStaff:
		return m.state.staff.mode == staffModeForm
	case viewReports:
		return m.state.reports.editing
	}
	return false
}
