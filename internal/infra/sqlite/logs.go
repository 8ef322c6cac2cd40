package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// ─── Activity Log Repository ────────────────────────────────────────────────
// The tracker owns the collection in memory and writes it back wholesale —
// one ReplaceLogs per mutation transaction, never per-count updates.

// LoadLogs reads the full log collection, newest first.
func (d *DB) LoadLogs(ctx context.Context) ([]domain.ActivityLog, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT date, contacts, videos_sent, appointments, new_contracts, new_family_utility
		 FROM activity_logs ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.ActivityLog
	index := make(map[string]int)
	for rows.Next() {
		var date string
		var contacts, videos, appts, contracts, family int
		if err := rows.Scan(&date, &contacts, &videos, &appts, &contracts, &family); err != nil {
			return nil, err
		}
		l := domain.ActivityLog{Date: date, Counts: make(map[domain.ActivityType]int)}
		setIfPositive(l.Counts, domain.ActContacts, contacts)
		setIfPositive(l.Counts, domain.ActVideosSent, videos)
		setIfPositive(l.Counts, domain.ActAppointments, appts)
		setIfPositive(l.Counts, domain.ActNewContracts, contracts)
		setIfPositive(l.Counts, domain.ActNewFamilyUtility, family)
		index[date] = len(logs)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := d.loadContractDetails(ctx, logs, index); err != nil {
		return nil, err
	}
	if err := d.loadLeads(ctx, logs, index); err != nil {
		return nil, err
	}
	return logs, nil
}

func (d *DB) loadContractDetails(ctx context.Context, logs []domain.ActivityLog, index map[string]int) error {
	rows, err := d.db.QueryContext(ctx, `SELECT date, subtype, count FROM contract_details`)
	if err != nil {
		return fmt.Errorf("query contract details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date, subtype string
		var count int
		if err := rows.Scan(&date, &subtype, &count); err != nil {
			return err
		}
		i, ok := index[date]
		if !ok {
			continue // orphaned detail row — day was purged
		}
		if logs[i].ContractDetails == nil {
			logs[i].ContractDetails = make(map[domain.ContractSubtype]int)
		}
		logs[i].ContractDetails[domain.ContractSubtype(subtype)] = count
	}
	return rows.Err()
}

func (d *DB) loadLeads(ctx context.Context, logs []domain.ActivityLog, index map[string]int) error {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, date, name, phone, note, activity, captured_at, status
		 FROM leads ORDER BY captured_at ASC`,
	)
	if err != nil {
		return fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lead domain.Lead
		var date, activity, status string
		var capturedAt int64
		if err := rows.Scan(&lead.ID, &date, &lead.Name, &lead.Phone, &lead.Note, &activity, &capturedAt, &status); err != nil {
			return err
		}
		i, ok := index[date]
		if !ok {
			continue
		}
		lead.Activity = domain.ActivityType(activity)
		lead.Status = domain.LeadStatus(status)
		lead.CapturedAt = time.Unix(capturedAt, 0)
		logs[i].Leads = append(logs[i].Leads, lead)
	}
	return rows.Err()
}

// ReplaceLogs writes the whole collection in a single transaction. A
// compound mutation (two counts plus a lead) lands as one state transition.
func (d *DB) ReplaceLogs(ctx context.Context, logs []domain.ActivityLog) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"activity_logs", "contract_details", "leads"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	logStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO activity_logs (date, contacts, videos_sent, appointments, new_contracts, new_family_utility)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer logStmt.Close()

	detailStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contract_details (date, subtype, count) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer detailStmt.Close()

	leadStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leads (id, date, name, phone, note, activity, captured_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer leadStmt.Close()

	for _, l := range logs {
		_, err := logStmt.ExecContext(ctx, l.Date,
			l.Count(domain.ActContacts),
			l.Count(domain.ActVideosSent),
			l.Count(domain.ActAppointments),
			l.Count(domain.ActNewContracts),
			l.Count(domain.ActNewFamilyUtility),
		)
		if err != nil {
			return fmt.Errorf("insert log %s: %w", l.Date, err)
		}
		for subtype, count := range l.ContractDetails {
			if _, err := detailStmt.ExecContext(ctx, l.Date, string(subtype), count); err != nil {
				return fmt.Errorf("insert detail %s/%s: %w", l.Date, subtype, err)
			}
		}
		for _, lead := range l.Leads {
			_, err := leadStmt.ExecContext(ctx, lead.ID, l.Date, lead.Name, lead.Phone,
				lead.Note, string(lead.Activity), lead.CapturedAt.Unix(), string(lead.Status))
			if err != nil {
				return fmt.Errorf("insert lead %s: %w", lead.ID, err)
			}
		}
	}

	return tx.Commit()
}

func setIfPositive(m map[domain.ActivityType]int, a domain.ActivityType, n int) {
	if n > 0 {
		m[a] = n
	}
}
