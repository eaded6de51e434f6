package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// PostgresStore is a Store backed by PostgreSQL via a pgx pool.
// Transaction IDs are the bigserial primary key rendered as a string.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ConnectPostgres opens a pool from a connection string (DATABASE_URL).
func ConnectPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Transactions(ctx context.Context, ownerID int, f Filter) ([]model.Transaction, error) {
	query := `
		SELECT t.id, t.owner_id, t.category_id, t.amount, t.description,
		       t.payment_method, t.notes, t.date, t.is_recurring, t.recurrence
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id`
	conds := []string{"t.owner_id = $1"}
	args := []any{ownerID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != 0 {
		add("t.category_id = $%d", f.CategoryID)
	}
	if f.Type != "" {
		add("c.type = $%d", string(f.Type))
	}
	if !f.Start.IsZero() {
		add("t.date >= $%d", f.Start)
	}
	if !f.End.IsZero() {
		add("t.date <= $%d", f.End)
	}
	if f.PaymentMethod != "" {
		add("t.payment_method = $%d", string(f.PaymentMethod))
	}
	if f.MinAmount != nil {
		add("t.amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("t.amount <= $%d", *f.MaxAmount)
	}
	if f.RecurringOnly {
		conds = append(conds, "t.is_recurring")
	}
	query += "\n\t\tWHERE " + strings.Join(conds, " AND ") + "\n\t\tORDER BY t.date DESC, t.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var txID int64
		if err := rows.Scan(&txID, &tx.OwnerID, &tx.CategoryID, &tx.Amount, &tx.Description,
			&tx.PaymentMethod, &tx.Notes, &tx.Date, &tx.IsRecurring, &tx.Recurrence); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		tx.ID = strconv.FormatInt(txID, 10)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (owner_id, category_id, amount, description, payment_method, notes, date, is_recurring, recurrence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var txID int64
	err := s.pool.QueryRow(ctx, query,
		tx.OwnerID, tx.CategoryID, tx.Amount, tx.Description,
		tx.PaymentMethod, tx.Notes, tx.Date, tx.IsRecurring, tx.Recurrence).Scan(&txID)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	tx.ID = strconv.FormatInt(txID, 10)
	return nil
}

func (s *PostgresStore) UpdateTransaction(ctx context.Context, tx model.Transaction) error {
	txID, err := strconv.ParseInt(tx.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
	}
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, description = $3, payment_method = $4,
		    notes = $5, date = $6, is_recurring = $7, recurrence = $8
		WHERE id = $9 AND owner_id = $10`

	tag, err := s.pool.Exec(ctx, query,
		tx.CategoryID, tx.Amount, tx.Description, tx.PaymentMethod,
		tx.Notes, tx.Date, tx.IsRecurring, tx.Recurrence, txID, tx.OwnerID)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteTransaction(ctx context.Context, ownerID int, txIDStr string) error {
	txID, err := strconv.ParseInt(txIDStr, 10, 64)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", txIDStr, ErrNotFound)
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND owner_id = $2`, txID, ownerID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", txIDStr, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Categories(ctx context.Context, ownerID int) ([]model.Category, error) {
	query := `
		SELECT id, owner_id, name, type, color, icon
		FROM categories
		WHERE owner_id = $1 OR owner_id = 0
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Type, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddCategory(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (owner_id, name, type, color, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, c.OwnerID, c.Name, c.Type, c.Color, c.Icon).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (s *PostgresStore) Budgets(ctx context.Context, ownerID int) ([]model.Budget, error) {
	query := `
		SELECT id, owner_id, category_id, amount, period, start_date, end_date
		FROM budgets
		WHERE owner_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying budgets: %w", err)
	}
	defer rows.Close()

	var out []model.Budget
	for rows.Next() {
		var b model.Budget
		var end *time.Time // NULL = open-ended
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.CategoryID, &b.Amount, &b.Period, &b.StartDate, &end); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		if end != nil {
			b.EndDate = *end
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddBudget(ctx context.Context, b *model.Budget) error {
	query := `
		INSERT INTO budgets (owner_id, category_id, amount, period, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, b.OwnerID, b.CategoryID, b.Amount, b.Period, b.StartDate, nullableTime(b.EndDate)).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateBudget(ctx context.Context, b model.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $1, amount = $2, period = $3, start_date = $4, end_date = $5
		WHERE id = $6 AND owner_id = $7`

	tag, err := s.pool.Exec(ctx, query, b.CategoryID, b.Amount, b.Period, b.StartDate, nullableTime(b.EndDate), b.ID, b.OwnerID)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget %d: %w", b.ID, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteBudget(ctx context.Context, ownerID, budgetID int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND owner_id = $2`, budgetID, ownerID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("budget %d: %w", budgetID, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Goals(ctx context.Context, ownerID int) ([]model.Goal, error) {
	query := `
		SELECT id, owner_id, name, target_amount, current_amount, deadline, description
		FROM goals
		WHERE owner_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var out []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Description); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddGoal(ctx context.Context, g *model.Goal) error {
	query := `
		INSERT INTO goals (owner_id, name, target_amount, current_amount, deadline, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, g.OwnerID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Description).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateGoal(ctx context.Context, g model.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, current_amount = $3, deadline = $4, description = $5
		WHERE id = $6 AND owner_id = $7`

	tag, err := s.pool.Exec(ctx, query, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Description, g.ID, g.OwnerID)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %d: %w", g.ID, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteGoal(ctx context.Context, ownerID, goalID int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND owner_id = $2`, goalID, ownerID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("goal %d: %w", goalID, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Owners(ctx context.Context) ([]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT owner_id FROM transactions ORDER BY owner_id`)
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var ownerID int
		if err := rows.Scan(&ownerID); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		out = append(out, ownerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return out, nil
}

// GoalByID fetches one goal, surfacing ErrNotFound for missing or
// foreign rows.
func (s *PostgresStore) GoalByID(ctx context.Context, ownerID, goalID int) (model.Goal, error) {
	query := `
		SELECT id, owner_id, name, target_amount, current_amount, deadline, description
		FROM goals
		WHERE id = $1 AND owner_id = $2`

	var g model.Goal
	err := s.pool.QueryRow(ctx, query, goalID, ownerID).Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Goal{}, fmt.Errorf("goal %d: %w", goalID, ErrNotFound)
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("querying goal: %w", err)
	}
	return g, nil
}
