package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/mvirtane/billterm/billing"
)

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login authenticates with email and password. The returned session token is
// not attached to the client automatically; call SetToken once the caller
// has accepted the session (the UI rejects non-admin roles first).
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Dashboard fetches the admin dashboard summary.
func (c *Client) Dashboard(ctx context.Context) (billing.DashboardSummary, error) {
	var summary billing.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/admin", nil, nil, &summary); err != nil {
		return billing.DashboardSummary{}, err
	}
	return summary, nil
}

// Invoices fetches the full invoice snapshot.
func (c *Client) Invoices(ctx context.Context) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/list/", nil, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ProductDraft is the payload for creating or updating a product.
type ProductDraft struct {
	Name  string          `json:"name"`
	Code  string          `json:"code"`
	Price decimal.Decimal `json:"price"`
}

// Products fetches all products.
func (c *Client) Products(ctx context.Context) ([]billing.Product, error) {
	var products []billing.Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a new product.
func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) error {
	return c.do(ctx, http.MethodPost, "/products/new-product/", nil, draft, nil)
}

// UpdateProduct replaces the fields of an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft ProductDraft) error {
	return c.do(ctx, http.MethodPut, "/products/"+id, nil, draft, nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}

// StaffDraft is the payload for creating or updating a staff member. On
// update, an empty Password leaves the current password unchanged.
type StaffDraft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Staff fetches all staff members.
func (c *Client) Staff(ctx context.Context) ([]billing.Staff, error) {
	var staff []billing.Staff
	if err := c.do(ctx, http.MethodGet, "/staff/get-staff", nil, nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// CreateStaff adds a new staff member.
func (c *Client) CreateStaff(ctx context.Context, draft StaffDraft) error {
	return c.do(ctx, http.MethodPost, "/staff/staff-create/", nil, draft, nil)
}

// UpdateStaff replaces the fields of an existing staff member.
func (c *Client) UpdateStaff(ctx context.Context, id string, draft StaffDraft) error {
	return c.do(ctx, http.MethodPut, "/staff/edit-staff/"+id, nil, draft, nil)
}

// DeleteStaff removes a staff member.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/staff/delete-staff/"+id, nil, nil, nil)
}

// DailyReport fetches the report for one calendar day, given in "YYYY-MM-DD"
// form.
func (c *Client) DailyReport(ctx context.Context, date string) (billing.Report, error) {
	query := url.Values{"date": {date}}
	var report billing.Report
	if err := c.do(ctx, http.MethodGet, "/reports/daily", query, nil, &report); err != nil {
		return billing.Report{}, err
	}
	return report, nil
}

// RangeReport fetches the report for an inclusive calendar-day range, both
// bounds in "YYYY-MM-DD" form.
func (c *Client) RangeReport(ctx context.Context, from, to string) (billing.Report, error) {
	query := url.Values{"from": {from}, "to": {to}}
	var report billing.Report
	if err := c.do(ctx, http.MethodGet, "/reports/range", query, nil, &report); err != nil {
		return billing.Report{}, err
	}
	return report, nil
}
