package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// Order drafts are the server-side home of the custom order composer: one
// draft per session, accumulating line items until the staff member submits
// the order to the backend (which clears the draft) or abandons it.

// StartDraft creates a fresh draft bound to a customer, replacing any
// existing draft for the session.
func StartDraft(ctx context.Context, db *sql.DB, sessionID string, customer model.User) error {
	customerJSON, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("encoding customer: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO order_drafts (session_id, customer_json) VALUES (?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		     customer_json = excluded.customer_json,
		     description = '',
		     items_json = '[]',
		     updated_at = CURRENT_TIMESTAMP`,
		sessionID, string(customerJSON),
	)
	if err != nil {
		return fmt.Errorf("starting draft: %w", err)
	}
	return nil
}

// GetDraft returns the session's draft, or nil if none exists.
func GetDraft(ctx context.Context, db *sql.DB, sessionID string) (*model.OrderDraft, error) {
	var customerJSON, description, itemsJSON string
	err := db.QueryRowContext(ctx,
		`SELECT customer_json, description, items_json FROM order_drafts WHERE session_id = ?`,
		sessionID,
	).Scan(&customerJSON, &description, &itemsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}

	draft := &model.OrderDraft{Description: description}
	if err := json.Unmarshal([]byte(customerJSON), &draft.Customer); err != nil {
		return nil, fmt.Errorf("decoding draft customer: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &draft.Items); err != nil {
		return nil, fmt.Errorf("decoding draft items: %w", err)
	}
	return draft, nil
}

// SetDraftDescription updates the draft's customization description.
func SetDraftDescription(ctx context.Context, db *sql.DB, sessionID, description string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE order_drafts SET description = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE session_id = ?`,
		description, sessionID,
	)
	if err != nil {
		return fmt.Errorf("setting draft description: %w", err)
	}
	return nil
}

// AppendDraftItem adds a validated line item to the draft. Duplicate
// products are allowed as separate line items.
func AppendDraftItem(ctx context.Context, db *sql.DB, sessionID string, item model.LineItem) error {
	return mutateDraftItems(ctx, db, sessionID, func(items []model.LineItem) ([]model.LineItem, error) {
		return append(items, item), nil
	})
}

// ReplaceDraftItem replaces the line item at index in place.
func ReplaceDraftItem(ctx context.Context, db *sql.DB, sessionID string, index int, item model.LineItem) error {
	return mutateDraftItems(ctx, db, sessionID, func(items []model.LineItem) ([]model.LineItem, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("line item index %d out of range", index)
		}
		items[index] = item
		return items, nil
	})
}

// RemoveDraftItem deletes the line item at index.
func RemoveDraftItem(ctx context.Context, db *sql.DB, sessionID string, index int) error {
	return mutateDraftItems(ctx, db, sessionID, func(items []model.LineItem) ([]model.LineItem, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("line item index %d out of range", index)
		}
		return append(items[:index], items[index+1:]...), nil
	})
}

// PruneStaleDrafts removes drafts that have not been touched within maxAge.
// Sessions expire, so their drafts can never be resumed; without pruning
// the rows would accumulate forever. Returns the number of drafts removed.
func PruneStaleDrafts(ctx context.Context, db *sql.DB, maxAge time.Duration) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM order_drafts WHERE updated_at < datetime('now', ?)`,
		fmt.Sprintf("-%d seconds", int64(maxAge.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning drafts: %w", err)
	}
	return res.RowsAffected()
}

// DeleteDraft discards the session's draft.
func DeleteDraft(ctx context.Context, db *sql.DB, sessionID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM order_drafts WHERE session_id = ?`, sessionID,
	)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

func mutateDraftItems(ctx context.Context, db *sql.DB, sessionID string, fn func([]model.LineItem) ([]model.LineItem, error)) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning draft update: %w", err)
	}
	defer tx.Rollback()

	var itemsJSON string
	err = tx.QueryRowContext(ctx,
		`SELECT items_json FROM order_drafts WHERE session_id = ?`, sessionID,
	).Scan(&itemsJSON)
	if err == sql.ErrNoRows {
		return fmt.Errorf("no draft for session")
	}
	if err != nil {
		return fmt.Errorf("reading draft items: %w", err)
	}

	var items []model.LineItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return fmt.Errorf("decoding draft items: %w", err)
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	updated, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding draft items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE order_drafts SET items_json = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE session_id = ?`,
		string(updated), sessionID,
	)
	if err != nil {
		return fmt.Errorf("writing draft items: %w", err)
	}

	return tx.Commit()
}
