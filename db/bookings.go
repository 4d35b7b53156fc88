// ABOUTME: Booking database operations
// ABOUTME: Records confirmed shoots that drive check-in and repeat outreach
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

const bookingColumns = `id, lead_id, booked_at, shoot_date, notes, created_at`

func CreateBooking(db *sql.DB, b *models.Booking) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	if b.BookedAt.IsZero() {
		b.BookedAt = b.CreatedAt
	}

	_, err := db.Exec(`
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID.String(), b.LeadID.String(), b.BookedAt.UTC(), b.ShootDate, b.Notes, b.CreatedAt)
	return err
}

// ListBookings returns bookings oldest first, for one lead or all when leadID is nil.
func ListBookings(db *sql.DB, leadID *uuid.UUID) ([]models.Booking, error) {
	var rows *sql.Rows
	var err error
	if leadID != nil {
		rows, err = db.Query(`SELECT `+bookingColumns+` FROM bookings WHERE lead_id = ? ORDER BY booked_at`, leadID.String())
	} else {
		rows, err = db.Query(`SELECT ` + bookingColumns + ` FROM bookings ORDER BY booked_at`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.LeadID, &b.BookedAt, &b.ShootDate, &b.Notes, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func DeleteBooking(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM bookings WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
