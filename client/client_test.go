package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func Test_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("request is missing X-Request-ID")
		}
		w.Write([]byte(`{"token":"tok123","role":"admin"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	session, err := c.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Token != "tok123" || session.Role != "admin" {
		t.Errorf("Login() = %+v, want token tok123, role admin", session)
	}
}

func Test_bearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok123"))
	if _, err := c.Invoices(context.Background()); err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}

	c.SetToken("")
	if _, err := c.Invoices(context.Background()); err != nil {
		t.Fatalf("Invoices() after SetToken error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after clearing token = %q, want empty", gotAuth)
	}
}

func Test_Invoices_decoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoices/list/" {
			t.Errorf("path = %s, want /invoices/list/", r.URL.Path)
		}
		w.Write([]byte(`[
			{"_id":"665f01aabbcc","customerName":"Acme Oy","staffId":{"_id":"st1","name":"Anna"},"totalAmount":123.45,"invoiceDate":"2024-03-05T23:59:00Z"},
			{"_id":"665f02ddeeff","customerName":"Bolt Ky","staffId":null,"totalAmount":50,"invoiceDate":"2024-03-06T08:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	invoices, err := c.Invoices(context.Background())
	if err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("Invoices() length = %d, want 2", len(invoices))
	}
	if invoices[0].Staff == nil || invoices[0].Staff.Name != "Anna" {
		t.Errorf("invoices[0].Staff = %+v, want Anna", invoices[0].Staff)
	}
	if invoices[0].TotalAmount.String() != "123.45" {
		t.Errorf("invoices[0].TotalAmount = %s, want 123.45", invoices[0].TotalAmount)
	}
	if invoices[1].Staff != nil {
		t.Errorf("invoices[1].Staff = %+v, want nil", invoices[1].Staff)
	}
	if got := invoices[0].Day(); got != "2024-03-05" {
		t.Errorf("invoices[0].Day() = %s, want 2024-03-05", got)
	}
}

func Test_reportQueries(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"date":"2024-03-05","totalSales":150,"count":2,"invoices":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	report, err := c.DailyReport(context.Background(), "2024-03-05")
	if err != nil {
		t.Fatalf("DailyReport() error = %v", err)
	}
	if gotPath != "/reports/daily" || gotQuery != "date=2024-03-05" {
		t.Errorf("DailyReport request = %s?%s", gotPath, gotQuery)
	}
	if report.Count != 2 || report.TotalSales.String() != "150" {
		t.Errorf("DailyReport() = %+v", report)
	}

	if _, err = c.RangeReport(context.Background(), "2024-03-01", "2024-03-05"); err != nil {
		t.Fatalf("RangeReport() error = %v", err)
	}
	if gotPath != "/reports/range" || gotQuery != "from=2024-03-01&to=2024-03-05" {
		t.Errorf("RangeReport request = %s?%s", gotPath, gotQuery)
	}
}

func Test_errorResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "admin@example.com", "wrong")
	if err == nil {
		t.Fatal("Login() expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Login() error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "invalid credentials" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !IsAuthError(err) {
		t.Error("IsAuthError() = false for 401")
	}
}

func Test_deleteEndpoints(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message":"deleted"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.DeleteStaff(context.Background(), "st1"); err != nil {
		t.Fatalf("DeleteStaff() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/staff/delete-staff/st1" {
		t.Errorf("DeleteStaff request = %s %s", gotMethod, gotPath)
	}
	if err := c.DeleteProduct(context.Background(), "p1"); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/products/p1" {
		t.Errorf("DeleteProduct request = %s %s", gotMethod, gotPath)
	}
}
