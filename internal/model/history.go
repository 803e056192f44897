package model

import (
	"fmt"
	"strconv"
	"strings"
)

// HistoryRecord is the completion snapshot of a single date taken at the
// last aggregation call.
type HistoryRecord struct {
	Date                 string  `gorm:"primaryKey"`
	CompletionPercentage float64 `gorm:"column:completion_percentage"`
	TaskIDs              string  `gorm:"column:task_ids"`
	TotalTasks           int
	CompletedTasks       int
}

func (HistoryRecord) TableName() string { return "history" }

// IDs decodes the comma separated task id list, skipping malformed entries.
func (h HistoryRecord) IDs() []uint {
	if h.TaskIDs == "" {
		return nil
	}
	parts := strings.Split(h.TaskIDs, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// Summary renders the record the way the history view shows it.
func (h HistoryRecord) Summary() string {
	return fmt.Sprintf("Completion: %.1f%% (%d of %d tasks)", h.CompletionPercentage, h.CompletedTasks, h.TotalTasks)
}

// JoinIDs encodes ids in the stored comma separated form.
func JoinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
