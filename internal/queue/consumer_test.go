package queue

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shift-scheduler/internal/model"
)

func TestHandleMessageAppendsAuditLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shifts.log")
	c := &AuditConsumer{LogPath: path, Logger: slog.New(slog.NewTextHandler(os.Stderr, nil))}

	sh := model.Shift{
		ID:         7,
		EmployeeID: 3,
		ShiftDate:  model.NewDate(2025, 5, 21),
		ShiftType:  model.ShiftMorning,
		StartTime:  model.NewDateTime(2025, 5, 21, 9, 0, 0),
		EndTime:    model.NewDateTime(2025, 5, 21, 17, 0, 0),
	}
	created, err := json.Marshal(NewShiftEvent(ShiftCreated, sh, "2025-05-20T10:00:00Z"))
	require.NoError(t, err)
	require.NoError(t, c.HandleMessage(created))

	deleted, err := json.Marshal(ShiftEvent{Type: EmployeeDeleted, EmployeeID: 3, RemovedShiftIDs: []uint64{7, 8}, OccurredAt: "2025-05-20T11:00:00Z"})
	require.NoError(t, err)
	require.NoError(t, c.HandleMessage(deleted))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"[2025-05-20T10:00:00Z] shift.created | shift_id=7 | employee_id=3 | date=2025-05-21 | shift=MORNING | 2025-05-21T09:00:00 -> 2025-05-21T17:00:00\n"+
			"[2025-05-20T11:00:00Z] employee.deleted | employee_id=3 | removed_shifts=[7,8]\n",
		string(data))
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	c := &AuditConsumer{LogPath: filepath.Join(t.TempDir(), "a.log")}
	require.Error(t, c.HandleMessage([]byte("{not json")))
	require.Error(t, c.HandleMessage([]byte(`{"employee_id": 1}`)))
}
