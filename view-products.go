package billterm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mvirtane/billterm/billing"
	"github.com/mvirtane/billterm/client"
)

// Modes of the products section.
const (
	productModeList = iota
	productModeForm
	productModeConfirm
)

// productsState holds the product snapshot and the list/form/confirm mode
// the section is in.
type productsState struct {
	seq     int
	loading bool
	items   []billing.Product
	cursor  int
	mode    int
	form    productForm
	err     string
}

func newProductsState() productsState {
	return productsState{form: newProductForm()}
}

// productForm is the create/edit form for a product. An empty id means the
// form creates a new product.
type productForm struct {
	id    string
	name  textinput.Model
	code  textinput.Model
	price textinput.Model
	focus int
	busy  bool
	err   string
}

func newProductForm() productForm {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 120
	name.Width = 32
	name.Focus()
	code := textinput.New()
	code.Placeholder = "code"
	code.CharLimit = 32
	code.Width = 32
	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 16
	price.Width = 32
	return productForm{name: name, code: code, price: price}
}

func editProductForm(p billing.Product) productForm {
	form := newProductForm()
	form.id = p.ID
	form.name.SetValue(p.Name)
	form.code.SetValue(p.Code)
	form.price.SetValue(p.Price.String())
	return form
}

func (f productForm) update(message tea.Msg) (productForm, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(message)
	cmds = append(cmds, cmd)
	f.code, cmd = f.code.Update(message)
	cmds = append(cmds, cmd)
	f.price, cmd = f.price.Update(message)
	cmds = append(cmds, cmd)
	return f, tea.Batch(cmds...)
}

// setFocus moves the input focus to the field at f.focus.
func (f *productForm) setFocus() tea.Cmd {
	inputs := []*textinput.Model{&f.name, &f.code, &f.price}
	var cmd tea.Cmd
	for i, input := range inputs {
		if i == f.focus {
			cmd = input.Focus()
			continue
		}
		input.Blur()
	}
	return cmd
}

// draft validates the form and returns the draft to send.
func (f productForm) draft() (client.ProductDraft, error) {
	name := strings.TrimSpace(f.name.Value())
	code := strings.TrimSpace(f.code.Value())
	if name == "" || code == "" {
		return client.ProductDraft{}, fmt.Errorf("name and code are required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.price.Value()))
	if err != nil {
		return client.ProductDraft{}, fmt.Errorf("price must be a number")
	}
	if price.IsNegative() {
		return client.ProductDraft{}, fmt.Errorf("price must not be negative")
	}
	return client.ProductDraft{Name: name, Code: code, Price: price}, nil
}

func (m BillTerm) fetchProducts(seq int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		products, err := api.Products(ctx)
		return productsDataMsg{seq: seq, products: products, err: err}
	}
}

func (m BillTerm) handleProductsData(msg productsDataMsg) (tea.Model, tea.Cmd) {
	s := &m.state.products
	if msg.seq != s.seq {
		return m, nil
	}
	s.loading = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("product fetch failed", slog.String("error", msg.err.Error()))
		s.err = msg.err.Error()
		return m, nil
	}
	s.err = ""
	s.items = msg.products
	if s.cursor >= len(s.items) {
		s.cursor = 0
	}
	return m, nil
}

func (m BillTerm) updateProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.products
	switch s.mode {
	case productModeForm:
		return m.updateProductFormKey(msg)
	case productModeConfirm:
		if msg.String() == "y" || msg.String() == "Y" {
			s.mode = productModeList
			if s.cursor < len(s.items) {
				return m, m.deleteProduct(s.items[s.cursor].ID)
			}
			return m, nil
		}
		s.mode = productModeList
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.newItem):
		s.mode = productModeForm
		s.form = newProductForm()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.editItem):
		if s.cursor < len(s.items) {
			s.mode = productModeForm
			s.form = editProductForm(s.items[s.cursor])
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, m.keys.deleteItem):
		if s.cursor < len(s.items) {
			s.mode = productModeConfirm
		}
		return m, nil
	case key.Matches(msg, m.keys.cursorUp):
		s.cursor = decMin(s.cursor, 0)
		return m, nil
	case key.Matches(msg, m.keys.cursorDown):
		if len(s.items) > 0 {
			s.cursor = incMax(s.cursor, len(s.items)-1)
		}
		return m, nil
	}
	return m, nil
}

func (m BillTerm) updateProductFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.products
	switch {
	case key.Matches(msg, m.keys.cancel):
		s.mode = productModeList
		return m, nil
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		s.form.focus = incWrap(s.form.focus, 0, 2)
		return m, s.form.setFocus()
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		s.form.focus = decWrap(s.form.focus, 0, 2)
		return m, s.form.setFocus()
	case key.Matches(msg, m.keys.fetch):
		if s.form.busy {
			return m, nil
		}
		draft, err := s.form.draft()
		if err != nil {
			s.form.err = err.Error()
			return m, nil
		}
		s.form.busy = true
		s.form.err = ""
		return m, m.saveProduct(s.form.id, draft)
	}
	return m.updateInputs(msg)
}

func (m BillTerm) saveProduct(id string, draft client.ProductDraft) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		var err error
		if id == "" {
			err = api.CreateProduct(ctx, draft)
		} else {
			err = api.UpdateProduct(ctx, id, draft)
		}
		return productSavedMsg{created: id == "", err: err}
	}
}

func (m BillTerm) deleteProduct(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return productDeletedMsg{err: api.DeleteProduct(ctx, id)}
	}
}

func (m BillTerm) handleProductSaved(msg productSavedMsg) (tea.Model, tea.Cmd) {
	s := &m.state.products
	s.form.busy = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("product save failed", slog.String("error", msg.err.Error()))
		s.form.err = msg.err.Error()
		return m, nil
	}
	s.mode = productModeList
	if msg.created {
		m.setStatus("Product created.", false)
	} else {
		m.setStatus("Product updated.", false)
	}
	// refetch so the list reflects the change.
	s.seq++
	s.loading = true
	return m, m.fetchProducts(s.seq)
}

func (m BillTerm) handleProductDeleted(msg productDeletedMsg) (tea.Model, tea.Cmd) {
	s := &m.state.products
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("product delete failed", slog.String("error", msg.err.Error()))
		m.setStatus("Delete failed: "+msg.err.Error(), true)
		return m, nil
	}
	m.setStatus("Product deleted.", false)
	s.seq++
	s.loading = true
	return m, m.fetchProducts(s.seq)
}

func (m BillTerm) renderProducts(width, height int) string {
	s := m.state.products
	switch {
	case s.loading:
		return m.renderLoadingScreen(width, height)
	case s.err != "":
		return styleStatusErr.Render("Failed to load products: " + s.err)
	case s.mode == productModeForm:
		return m.renderProductForm(width, height)
	}
	var doc strings.Builder
	if len(s.items) == 0 {
		doc.WriteString(styleSubtle.Render("No products yet. Press n to add one."))
	} else {
		rows := make([][]string, 0, len(s.items))
		for _, p := range s.items {
			rows = append(rows, []string{p.Name, p.Code, money(p.Price)})
		}
		doc.WriteString(renderTable([]string{"Name", "Code", "Price"}, rows, s.cursor))
	}
	if s.mode == productModeConfirm && s.cursor < len(s.items) {
		doc.WriteString("\n")
		doc.WriteString(styleStatusErr.Render(fmt.Sprintf("Delete %q? Press y to confirm.", s.items[s.cursor].Name)))
	}
	doc.WriteString("\n")
	doc.WriteString(m.renderShortHelp(width, m.keys.newItem, m.keys.editItem, m.keys.deleteItem))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, doc.String())
}

func (m BillTerm) renderProductForm(width, height int) string {
	f := m.state.products.form
	title := "New product"
	if f.id != "" {
		title = "Edit product"
	}
	var doc strings.Builder
	doc.WriteString(styleLoginHeading.Render(title))
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Name"))
	doc.WriteString(f.name.View())
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Code"))
	doc.WriteString(f.code.View())
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Price"))
	doc.WriteString(f.price.View())
	doc.WriteString("\n\n")
	switch {
	case f.busy:
		doc.WriteString(styleSubtle.Render("Saving ..."))
	case f.err != "":
		doc.WriteString(styleStatusErr.Render(f.err))
	default:
		doc.WriteString(styleSubtle.Render("enter saves, esc cancels."))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styleFormContainer.Render(doc.String()))
}
