package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/josephgoksu/smarttask/internal/utils"
	"github.com/josephgoksu/smarttask/models"
)

// CSVHeader is the column set written by ExportCSV.
var CSVHeader = []string{"ID", "Title", "Description", "Deadline", "Urgency", "Dependencies", "Completed", "Priority Score"}

// ExportCSV writes one row per task in the given order. Dependencies are
// semicolon-joined, the deadline is RFC 3339 or empty and the score is rounded
// to two decimals. Filtering is up to the caller.
func ExportCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range tasks {
		deadline := ""
		if t.Deadline != nil {
			deadline = t.Deadline.Format(time.RFC3339)
		}
		row := []string{
			strconv.Itoa(t.ID),
			t.Title,
			t.Description,
			deadline,
			strconv.Itoa(t.Urgency),
			utils.JoinIDs(t.Dependencies, ";"),
			strconv.FormatBool(t.Completed),
			strconv.FormatFloat(t.PriorityScore, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for task %d: %w", t.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
