package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/shift-scheduler/internal/config"
	"github.com/iliyamo/shift-scheduler/internal/model"
	"github.com/iliyamo/shift-scheduler/internal/repository"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestMigrateAndExport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "shifts.db")
	t.Setenv("SHIFTS_DB_DRIVER", "sqlite3")
	t.Setenv("SHIFTS_DB_PATH", dbPath)
	t.Setenv("SHIFTS_LOGGER_LEVEL", "error")

	run(t, "migrate")

	conf, err := config.Parse()
	require.NoError(t, err)
	store, db, err := openStore(context.Background(), conf.DB, false, newLogger(conf.Logger))
	require.NoError(t, err)
	require.NoError(t, store.Session(context.Background(), false, func(sess *repository.Session) error {
		e := &model.Employee{Name: "Ada", Role: "Cook"}
		if err := sess.Employees.Create(context.Background(), e); err != nil {
			return err
		}
		return sess.Shifts.Create(context.Background(), &model.Shift{
			EmployeeID: e.ID,
			ShiftDate:  model.NewDate(2025, 5, 2),
			ShiftType:  model.ShiftNight,
			StartTime:  model.NewDateTime(2025, 5, 2, 20, 0, 0),
			EndTime:    model.NewDateTime(2025, 5, 2, 23, 0, 0),
		})
	}))
	require.NoError(t, db.Close())

	out := filepath.Join(dir, "may.xlsx")
	printed := run(t, "export", "--month", "2025-05", "--out", out)
	require.Equal(t, out, strings.TrimSpace(printed))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	book, err := excelize.OpenReader(f)
	require.NoError(t, err)
	defer book.Close()

	v, err := book.GetCellValue("Schedule", "C5")
	require.NoError(t, err)
	require.Equal(t, "NIGHT 20:00-23:00", v)
}

func TestExportRejectsBadMonth(t *testing.T) {
	rootCmd.SetArgs([]string{"export", "--month", "05/2025"})
	require.Error(t, rootCmd.Execute())
}
