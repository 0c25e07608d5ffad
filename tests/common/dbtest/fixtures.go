//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"escape-rooms-backend/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestRoom(t *testing.T, db DBLike, name, slug string, active bool) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		`INSERT INTO rooms (id, name, slug, short_description, full_description, base_price, is_active)
		 VALUES ($1, $2, $3, $4, $5, 30.00, $6)
		 ON CONFLICT (slug) DO NOTHING`,
		roomID, name, slug, name+" short", name+" full", active)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM rooms WHERE slug = $1", slug).Scan(&roomID)
	}

	return roomID
}

func CreateTestSlot(t *testing.T, db DBLike, roomID uuid.UUID, date, tm, status string) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		`INSERT INTO time_slots (id, room_id, date, time, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (room_id, date, time) DO NOTHING`,
		slotID, roomID, date, tm, status)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx,
			"SELECT id FROM time_slots WHERE room_id = $1 AND date = $2 AND time = $3",
			roomID, date, tm).Scan(&slotID)
	}

	return slotID
}

func CreateTestStaff(t *testing.T, db DBLike, email, role, plainPassword string) uuid.UUID {
	t.Helper()

	staffID := uuid.New()
	ctx := context.Background()

	hash, err := password.HashPassword(plainPassword)
	require.NoError(t, err)

	tag, err := db.Exec(ctx,
		`INSERT INTO staff_users (id, email, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, true)
		 ON CONFLICT (email) DO NOTHING`,
		staffID, email, hash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM staff_users WHERE email = $1", email).Scan(&staffID)
	}

	return staffID
}

func DeactivateStaff(t *testing.T, db DBLike, staffID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE staff_users SET is_active = false WHERE id = $1", staffID)
	require.NoError(t, err)
}

// CreateTestReservation inserts a reservation row directly and marks the slot
// reserved unless the reservation is cancelled. Used to stage states the API
// cannot produce in one call (already-expired holds, historical rows).
func CreateTestReservation(t *testing.T, db DBLike, roomID, slotID uuid.UUID, status string, expiresAt time.Time) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO reservations (
			id, room_id, time_slot_id, customer_name, customer_email,
			customer_phone, num_people, total_price, status, expires_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		reservationID, roomID, slotID,
		"Seed Customer", "seed@example.com", "+81-90-0000-0000",
		3, "90.00", status, expiresAt)
	require.NoError(t, err)

	if status != "cancelled" {
		_, err = db.Exec(ctx, "UPDATE time_slots SET status = 'reserved' WHERE id = $1", slotID)
		require.NoError(t, err)
	}

	return reservationID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
