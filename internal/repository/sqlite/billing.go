package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Billing and bill-split methods of the PlanningStore.

func (s *PlanningStore) CreateVendor(ctx context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = uuid.NewString()
	v.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (id, user_id, name, category, phone, gstin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.Name, v.Category, v.Phone, v.GSTIN, v.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert vendor: %w", err)
	}
	return v, nil
}

func (s *PlanningStore) ListVendors(ctx context.Context, userID string) ([]*domain.Vendor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, category, phone, gstin, created_at
		FROM vendors WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list vendors: %w", err)
	}
	defer rows.Close()

	var out []*domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		var createdAt string
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &v.Category, &v.Phone, &v.GSTIN, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (s *PlanningStore) DeleteVendor(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM vendors WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("planning: delete vendor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PlanningStore) CreateVendorPayment(ctx context.Context, p *domain.VendorPayment) (*domain.VendorPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendor_payments (id, vendor_id, user_id, amount, date, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.VendorID, p.UserID, p.Amount.StringFixed(2), p.Date, p.Notes)
	if err != nil {
		return nil, fmt.Errorf("planning: insert vendor payment: %w", err)
	}
	return p, nil
}

func (s *PlanningStore) ListVendorPayments(ctx context.Context, userID, vendorID string) ([]*domain.VendorPayment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vendor_id, user_id, amount, date, notes
		FROM vendor_payments WHERE user_id = ? AND vendor_id = ? ORDER BY date DESC`, userID, vendorID)
	if err != nil {
		return nil, fmt.Errorf("planning: list vendor payments: %w", err)
	}
	defer rows.Close()

	var out []*domain.VendorPayment
	for rows.Next() {
		var p domain.VendorPayment
		var amount string
		if err := rows.Scan(&p.ID, &p.VendorID, &p.UserID, &amount, &p.Date, &p.Notes); err != nil {
			return nil, err
		}
		p.Amount, _ = decimal.NewFromString(amount)
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *PlanningStore) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, user_id, name, phone, email, gstin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Phone, c.Email, c.GSTIN, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert customer: %w", err)
	}
	return c, nil
}

func (s *PlanningStore) ListCustomers(ctx context.Context, userID string) ([]*domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, phone, email, gstin, created_at
		FROM customers WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list customers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		var createdAt string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.GSTIN, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CreateInvoice writes the invoice and its items in one transaction.
func (s *PlanningStore) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.ID = uuid.NewString()
	inv.CreatedAt = s.now().UTC()
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("planning: begin invoice tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (id, user_id, customer_id, number, date, due_date, subtotal, gst_amount, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.UserID, inv.CustomerID, inv.Number, inv.Date, inv.DueDate,
		inv.Subtotal.StringFixed(2), inv.GSTAmount.StringFixed(2), inv.Total.StringFixed(2),
		string(inv.Status), inv.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert invoice: %w", err)
	}
	for _, item := range inv.Items {
		item.ID = uuid.NewString()
		item.InvoiceID = inv.ID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (id, invoice_id, name, quantity, rate, gst_rate, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.InvoiceID, item.Name, item.Quantity.String(), item.Rate.StringFixed(2),
			item.GSTRate, item.Amount.StringFixed(2))
		if err != nil {
			return nil, fmt.Errorf("planning: insert invoice item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *PlanningStore) GetInvoice(ctx context.Context, userID, id string) (*domain.Invoice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, customer_id, number, date, due_date, subtotal, gst_amount, total, status, created_at
		FROM invoices WHERE user_id = ? AND id = ?`, userID, id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice_id, name, quantity, rate, gst_rate, amount
		FROM invoice_items WHERE invoice_id = ?`, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("planning: invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.InvoiceItem
		var qty, rate, amount string
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Name, &qty, &rate, &item.GSTRate, &amount); err != nil {
			return nil, err
		}
		item.Quantity, _ = decimal.NewFromString(qty)
		item.Rate, _ = decimal.NewFromString(rate)
		item.Amount, _ = decimal.NewFromString(amount)
		inv.Items = append(inv.Items, &item)
	}
	return inv, rows.Err()
}

func (s *PlanningStore) ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, customer_id, number, date, due_date, subtotal, gst_amount, total, status, created_at
		FROM invoices WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list invoices: %w", err)
	}
	defer rows.Close()

	var out []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *PlanningStore) UpdateInvoiceStatus(ctx context.Context, userID, id string, status domain.InvoiceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE invoices SET status = ? WHERE user_id = ? AND id = ?`,
		string(status), userID, id)
	if err != nil {
		return fmt.Errorf("planning: update invoice status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var subtotal, gst, total, status, createdAt string
	err := row.Scan(&inv.ID, &inv.UserID, &inv.CustomerID, &inv.Number, &inv.Date,
		&inv.DueDate, &subtotal, &gst, &total, &status, &createdAt)
	if err != nil {
		return nil, err
	}
	inv.Subtotal, _ = decimal.NewFromString(subtotal)
	inv.GSTAmount, _ = decimal.NewFromString(gst)
	inv.Total, _ = decimal.NewFromString(total)
	inv.Status = domain.InvoiceStatus(status)
	inv.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &inv, nil
}

func (s *PlanningStore) UpsertBusinessProfile(ctx context.Context, p *domain.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO business_profiles
			(user_id, business_name, sector, gstin, udyam_number, years_active, annual_turnover, address, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			business_name = excluded.business_name,
			sector = excluded.sector,
			gstin = excluded.gstin,
			udyam_number = excluded.udyam_number,
			years_active = excluded.years_active,
			annual_turnover = excluded.annual_turnover,
			address = excluded.address,
			updated_at = excluded.updated_at`,
		p.UserID, p.BusinessName, p.Sector, p.GSTIN, p.UdyamNumber, p.YearsActive,
		p.AnnualTurnover.StringFixed(2), p.Address, p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("planning: upsert business profile: %w", err)
	}
	return nil
}

func (s *PlanningStore) GetBusinessProfile(ctx context.Context, userID string) (*domain.BusinessProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, business_name, sector, gstin, udyam_number, years_active, annual_turnover, address, updated_at
		FROM business_profiles WHERE user_id = ?`, userID)

	var p domain.BusinessProfile
	var turnover, updatedAt string
	err := row.Scan(&p.UserID, &p.BusinessName, &p.Sector, &p.GSTIN, &p.UdyamNumber,
		&p.YearsActive, &turnover, &p.Address, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.AnnualTurnover, _ = decimal.NewFromString(turnover)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

// CreateSplit writes the split, its bill items and participant shares in
// one transaction.
func (s *PlanningStore) CreateSplit(ctx context.Context, split *domain.BillSplit) (*domain.BillSplit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	split.ID = uuid.NewString()
	split.CreatedAt = s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("planning: begin split tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bill_splits (id, user_id, title, total_amount, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		split.ID, split.UserID, split.Title, split.TotalAmount.StringFixed(2),
		split.Date, split.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert split: %w", err)
	}
	for _, item := range split.Items {
		item.ID = uuid.NewString()
		item.SplitID = split.ID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bill_items (id, split_id, name, amount) VALUES (?, ?, ?, ?)`,
			item.ID, item.SplitID, item.Name, item.Amount.StringFixed(2))
		if err != nil {
			return nil, fmt.Errorf("planning: insert bill item: %w", err)
		}
	}
	for _, share := range split.Shares {
		share.ID = uuid.NewString()
		share.SplitID = split.ID
		if share.PaymentStatus == "" {
			share.PaymentStatus = domain.SplitPaymentPending
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO split_items (id, split_id, participant, share_amount, paid_amount, payment_status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			share.ID, share.SplitID, share.Participant, share.ShareAmount.StringFixed(2),
			share.PaidAmount.StringFixed(2), string(share.PaymentStatus))
		if err != nil {
			return nil, fmt.Errorf("planning: insert split item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return split, nil
}

func (s *PlanningStore) GetSplit(ctx context.Context, userID, id string) (*domain.BillSplit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, total_amount, date, created_at
		FROM bill_splits WHERE user_id = ? AND id = ?`, userID, id)
	split, err := scanSplit(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadSplitChildren(ctx, split); err != nil {
		return nil, err
	}
	return split, nil
}

func (s *PlanningStore) ListSplits(ctx context.Context, userID string) ([]*domain.BillSplit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, total_amount, date, created_at
		FROM bill_splits WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list splits: %w", err)
	}
	defer rows.Close()

	var out []*domain.BillSplit
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, split)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, split := range out {
		if err := s.loadSplitChildren(ctx, split); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PlanningStore) UpdateSplitItem(ctx context.Context, item *domain.SplitItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE split_items SET paid_amount = ?, payment_status = ? WHERE id = ?`,
		item.PaidAmount.StringFixed(2), string(item.PaymentStatus), item.ID)
	if err != nil {
		return fmt.Errorf("planning: update split item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSplit(row rowScanner) (*domain.BillSplit, error) {
	var split domain.BillSplit
	var total, createdAt string
	err := row.Scan(&split.ID, &split.UserID, &split.Title, &total, &split.Date, &createdAt)
	if err != nil {
		return nil, err
	}
	split.TotalAmount, _ = decimal.NewFromString(total)
	split.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &split, nil
}

func (s *PlanningStore) loadSplitChildren(ctx context.Context, split *domain.BillSplit) error {
	itemRows, err := s.db.QueryContext(ctx, `
		SELECT id, split_id, name, amount FROM bill_items WHERE split_id = ?`, split.ID)
	if err != nil {
		return fmt.Errorf("planning: bill items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item domain.BillItem
		var amount string
		if err := itemRows.Scan(&item.ID, &item.SplitID, &item.Name, &amount); err != nil {
			return err
		}
		item.Amount, _ = decimal.NewFromString(amount)
		split.Items = append(split.Items, &item)
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	shareRows, err := s.db.QueryContext(ctx, `
		SELECT id, split_id, participant, share_amount, paid_amount, payment_status
		FROM split_items WHERE split_id = ?`, split.ID)
	if err != nil {
		return fmt.Errorf("planning: split items: %w", err)
	}
	defer shareRows.Close()
	for shareRows.Next() {
		var share domain.SplitItem
		var shareAmt, paidAmt, status string
		if err := shareRows.Scan(&share.ID, &share.SplitID, &share.Participant, &shareAmt, &paidAmt, &status); err != nil {
			return err
		}
		share.ShareAmount, _ = decimal.NewFromString(shareAmt)
		share.PaidAmount, _ = decimal.NewFromString(paidAmt)
		share.PaymentStatus = domain.SplitPaymentStatus(status)
		split.Shares = append(split.Shares, &share)
	}
	return shareRows.Err()
}
