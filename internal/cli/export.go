package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iliyamo/shift-scheduler/internal/config"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

var (
	exportMonth string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a month of shifts to an xlsx file",
	Long: `Write the schedule of one month as a spreadsheet with one row per day and
one column per employee.

Without --month the current month is exported.  Without --out the file is
named shifts-YYYY-MM.xlsx.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		month := exportMonth
		if month == "" {
			month = time.Now().UTC().Format("2006-01")
		}
		first, err := service.ParseYearMonth(month)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("shifts-%s.xlsx", first.Format("2006-01"))
		}

		conf, err := config.Load()
		if err != nil {
			return err
		}
		logger := newLogger(conf.Logger)
		store, db, err := openStore(cmd.Context(), conf.DB, false, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		f, err := os.Create(out)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := service.NewExportService(store, logger).WriteMonth(cmd.Context(), first, f); err != nil {
			_ = f.Close()
			_ = os.Remove(out)
			return err
		}
		if err := f.Close(); err != nil {
			return errors.WithStack(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "month to export (YYYY-MM)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
}
