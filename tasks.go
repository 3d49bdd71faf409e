package main

import (
	"fmt"
	"text/tabwriter"

	"repair_desk/internal/app"
	"repair_desk/internal/repair"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print every repair task and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := app.SetupEnvironment(configPath)
		if err != nil {
			return err
		}
		repairs := repair.NewService(app.InitializeStore(cmd.Context(), cfg, useMemory), nil)

		tasks, err := repairs.ListTasks(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROW\tTIMESTAMP\tREPORTER\tLOCATION\tPROBLEM\tHELPER\tSTATUS")
		for _, t := range tasks {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				t.RowIndex, t.Timestamp, t.ReporterName, t.DeviceLocation,
				t.ProblemDescription, t.HelperTeacher, t.Status)
		}
		return w.Flush()
	},
}
