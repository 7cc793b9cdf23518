// Package report renders a read-only occupancy listing of the active periods.
package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

var weekdays = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var header = []string{"day", "schedule", "category", "court", "order", "state", "player", "email", "type"}

type Row struct {
	Day      string `json:"day"`
	Schedule string `json:"schedule"`
	Category string `json:"category"`
	Court    int64  `json:"court"`
	Order    int64  `json:"order"`
	State    string `json:"state"`
	Player   string `json:"player"`
	Email    string `json:"email"`
	Type     string `json:"type"`
}

// Source is the query the report reads from.
type Source interface {
	ListReportRows(ctx context.Context) ([]dbgen.ListReportRowsRow, error)
}

// Build lists every slot of the active periods ordered by weekday, start time,
// court and order index. Type is empty for slots without a booking.
func Build(ctx context.Context, src Source) ([]Row, error) {
	if src == nil {
		return nil, errors.New("report requires a source")
	}
	records, err := src.ListReportRows(ctx)
	if err != nil {
		return nil, apperr.Internal("list report rows", err)
	}

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{
			Day:      weekdayName(r.Weekday),
			Schedule: fmt.Sprintf("%s-%s", r.StartTime, r.EndTime),
			Category: categoryLabel(r.CategoryGender, r.CategoryLevel),
			Court:    r.CourtNumber,
			Order:    r.OrderIndex,
			State:    r.State,
		}
		if r.BookingID.Valid {
			occupant := booking.OccupantOf(r.PlayerID, r.OccupantFirstName, r.OccupantLastName)
			row.Player = occupant.Name
			row.Email = r.OccupantEmail
			row.Type = string(occupant.Kind)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Day,
			r.Schedule,
			r.Category,
			strconv.FormatInt(r.Court, 10),
			strconv.FormatInt(r.Order, 10),
			r.State,
			r.Player,
			r.Email,
			r.Type,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func weekdayName(day int64) string {
	if day < 0 || int(day) >= len(weekdays) {
		return strconv.FormatInt(day, 10)
	}
	return weekdays[day]
}

// categoryLabel renders a category as "F 4"; periods without one get "".
func categoryLabel(gender, level string) string {
	return strings.TrimSpace(gender + " " + level)
}
