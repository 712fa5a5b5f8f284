package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// ObligationRepository implements usecase.ObligationRepository.
type ObligationRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
	metrics *metrics.Metrics
}

// NewObligationRepository creates a new ObligationRepository. m may be
// nil.
func NewObligationRepository(pool *pgxpool.Pool, m *metrics.Metrics) *ObligationRepository {
	return &ObligationRepository{
		pool:    pool,
		retrier: NewRetrier(),
		metrics: m,
	}
}

const insertObligationSQL = `
INSERT INTO obligations (id, description, category_id, total_amount, payment_mode,
                         effective_date, paid, paid_date, closing_day, due_day, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const insertInstallmentSQL = `
INSERT INTO installments (obligation_id, sequence_number, amount, due_date, paid, paid_date)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create persists an obligation together with its installment plan. The
// record and its installments land in one transaction.
func (r *ObligationRepository) Create(ctx context.Context, rec *domain.ObligationRecord) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "create", "obligations", start, err) }()

	return r.retrier.Retry(ctx, func() error {
		return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
			var closingDay, dueDay *int
			if rec.Cycle != nil {
				closingDay = &rec.Cycle.ClosingDay
				dueDay = &rec.Cycle.DueDay
			}

			_, err := tx.Exec(ctx, insertObligationSQL,
				rec.ID,
				rec.Description,
				nullableString(rec.CategoryID),
				decimalToNumeric(rec.TotalAmount),
				string(rec.PaymentMode),
				timePtrToPgDate(rec.EffectiveDate),
				rec.Paid,
				timePtrToPgDate(rec.PaidDate),
				closingDay,
				dueDay,
				timeToPgTimestamptz(rec.CreatedAt),
			)
			if err != nil {
				return err
			}

			for _, ins := range rec.Installments {
				_, err := tx.Exec(ctx, insertInstallmentSQL,
					rec.ID,
					ins.SequenceNumber,
					decimalToNumeric(ins.Amount),
					timeToPgDate(ins.DueDate),
					ins.Paid,
					timePtrToPgDate(ins.PaidDate),
				)
				if err != nil {
					return err
				}
			}

			return nil
		})
	})
}

const selectObligationSQL = `
SELECT id, description, category_id, total_amount, payment_mode,
       effective_date, paid, paid_date, closing_day, due_day, created_at
FROM obligations`

// GetByID retrieves an obligation by ID, installments included.
func (r *ObligationRepository) GetByID(ctx context.Context, id string) (_ *domain.ObligationRecord, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "get", "obligations", start, err) }()

	row := r.pool.QueryRow(ctx, selectObligationSQL+" WHERE id = $1", id)

	rec, err := scanObligation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrObligationNotFound
		}

		return nil, err
	}

	if err := r.loadInstallments(ctx, []*domain.ObligationRecord{rec}); err != nil {
		return nil, err
	}

	return rec, nil
}

// List lists obligations with pagination, newest first.
func (r *ObligationRepository) List(ctx context.Context, limit, offset int) (_ []*domain.ObligationRecord, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "list", "obligations", start, err) }()

	rows, err := r.pool.Query(ctx, selectObligationSQL+" ORDER BY created_at DESC, id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectObligations(ctx, rows)
}

// ListAll retrieves every obligation. Aggregation and forecasting work on
// the full history.
func (r *ObligationRepository) ListAll(ctx context.Context) (_ []*domain.ObligationRecord, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "list_all", "obligations", start, err) }()

	rows, err := r.pool.Query(ctx, selectObligationSQL+" ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectObligations(ctx, rows)
}

// MarkPaid marks a single-payment obligation as paid.
func (r *ObligationRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "mark_paid", "obligations", start, err) }()

	tag, err := r.pool.Exec(ctx,
		`UPDATE obligations SET paid = TRUE, paid_date = $2 WHERE id = $1`,
		id, timeToPgDate(paidAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrObligationNotFound
	}

	return nil
}

// MarkInstallmentPaid marks one installment of an obligation as paid.
func (r *ObligationRepository) MarkInstallmentPaid(ctx context.Context, id string, sequenceNumber int, paidAt time.Time) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "mark_paid", "installments", start, err) }()

	tag, err := r.pool.Exec(ctx,
		`UPDATE installments SET paid = TRUE, paid_date = $3
		 WHERE obligation_id = $1 AND sequence_number = $2`,
		id, sequenceNumber, timeToPgDate(paidAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

func (r *ObligationRepository) collectObligations(ctx context.Context, rows pgx.Rows) ([]*domain.ObligationRecord, error) {
	var records []*domain.ObligationRecord
	for rows.Next() {
		rec, err := scanObligation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadInstallments(ctx, records); err != nil {
		return nil, err
	}

	return records, nil
}

const selectInstallmentsSQL = `
SELECT obligation_id, sequence_number, amount, due_date, paid, paid_date
FROM installments
WHERE obligation_id = ANY($1)
ORDER BY obligation_id, sequence_number`

func (r *ObligationRepository) loadInstallments(ctx context.Context, records []*domain.ObligationRecord) error {
	byID := make(map[string]*domain.ObligationRecord, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.PaymentMode == domain.PaymentInstallment {
			byID[rec.ID] = rec
			ids = append(ids, rec.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.pool.Query(ctx, selectInstallmentsSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			obligationID string
			ins          domain.Installment
			amount       pgtype.Numeric
			dueDate      pgtype.Date
			paidDate     pgtype.Date
		)
		if err := rows.Scan(&obligationID, &ins.SequenceNumber, &amount, &dueDate, &ins.Paid, &paidDate); err != nil {
			return err
		}
		ins.Amount = numericToDecimal(amount)
		ins.DueDate = dueDate.Time
		ins.PaidDate = pgDateToTimePtr(paidDate)

		if rec, ok := byID[obligationID]; ok {
			rec.Installments = append(rec.Installments, ins)
		}
	}

	return rows.Err()
}

func scanObligation(row pgx.Row) (*domain.ObligationRecord, error) {
	var (
		rec           domain.ObligationRecord
		categoryID    pgtype.Text
		totalAmount   pgtype.Numeric
		paymentMode   string
		effectiveDate pgtype.Date
		paidDate      pgtype.Date
		closingDay    pgtype.Int4
		dueDay        pgtype.Int4
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&rec.ID,
		&rec.Description,
		&categoryID,
		&totalAmount,
		&paymentMode,
		&effectiveDate,
		&rec.Paid,
		&paidDate,
		&closingDay,
		&dueDay,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CategoryID = categoryID.String
	rec.TotalAmount = numericToDecimal(totalAmount)
	rec.PaymentMode = domain.PaymentMode(paymentMode)
	rec.EffectiveDate = pgDateToTimePtr(effectiveDate)
	rec.PaidDate = pgDateToTimePtr(paidDate)
	rec.CreatedAt = createdAt.Time
	if closingDay.Valid && dueDay.Valid {
		rec.Cycle = &domain.BillingCycle{
			ClosingDay: int(closingDay.Int32),
			DueDay:     int(dueDay.Int32),
		}
	}

	return &rec, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timeToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func timePtrToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}

	return pgtype.Date{Time: *t, Valid: true}
}

func pgDateToTimePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}

	t := d.Time.UTC()

	return &t
}

func nullableString(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
