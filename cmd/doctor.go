/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/smarttask/internal/logger"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the setup and the task data for problems",
	Long: `Validate the configuration and the task data.

Checks:
  • project directory and config file
  • data file presence, checksum and contents
  • tasks that depend on themselves
  • dependencies on tasks that no longer exist
  • dependency cycles (the tasks in a cycle are ordered by score alone)
  • crash reports left by earlier runs`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var errDoctorFailed = errors.New("doctor found problems")

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warn", "fail"
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	checks := []DoctorCheck{checkProjectDir(), checkConfigFile(), checkDataFile()}

	loadCheck, tasks := checkLoad()
	checks = append(checks, loadCheck)
	if loadCheck.Status == "ok" {
		checks = append(checks, checkIntegrity(tasks)...)
	}
	checks = append(checks, checkCrashLogs())

	hasErrors := false
	for _, c := range checks {
		if c.Status == "fail" {
			hasErrors = true
		}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if err := printJSON(out, checks); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, "smarttask doctor")
		fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		for _, c := range checks {
			printCheck(out, c)
		}
		fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		if hasErrors {
			fmt.Fprintln(out, "❌ Issues found. Fix the errors above before continuing.")
		} else {
			fmt.Fprintln(out, "✅ Everything looks good!")
		}
	}

	if hasErrors {
		return errDoctorFailed
	}
	return nil
}

func printCheck(w io.Writer, c DoctorCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = "✅"
	case "warn":
		icon = "⚠️ "
	case "fail":
		icon = "❌"
	}

	fmt.Fprintf(w, "%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" && c.Status != "ok" {
		fmt.Fprintf(w, "   └─ %s\n", c.Hint)
	}
}

func checkProjectDir() DoctorCheck {
	dir := GetConfig().Project.RootDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return DoctorCheck{
			Name:    "Project",
			Status:  "warn",
			Message: fmt.Sprintf("%s not found, using the global data directory", dir),
			Hint:    "Run: smarttask init",
		}
	}
	return DoctorCheck{Name: "Project", Status: "ok", Message: dir + " exists"}
}

func checkConfigFile() DoctorCheck {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return DoctorCheck{Name: "Config", Status: "ok", Message: used}
		}
	}
	return DoctorCheck{Name: "Config", Status: "ok", Message: "no config file, using defaults"}
}

func checkDataFile() DoctorCheck {
	path := GetTaskFilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DoctorCheck{
			Name:    "Data file",
			Status:  "warn",
			Message: path + " does not exist yet",
			Hint:    "It is created when the first task is added",
		}
	}
	return DoctorCheck{Name: "Data file", Status: "ok", Message: path}
}

func checkLoad() (DoctorCheck, []task.Task) {
	s, err := openSession()
	if err != nil {
		return DoctorCheck{
			Name:    "Load",
			Status:  "fail",
			Message: err.Error(),
			Hint:    "Restore a backup with: smarttask restore <file>",
		}, nil
	}
	defer s.close()

	st := s.sched.Stats()
	return DoctorCheck{
		Name:    "Load",
		Status:  "ok",
		Message: fmt.Sprintf("%d task(s), %d pending, next id %d", st.Total, st.Pending, s.sched.NextID()),
	}, s.sched.List()
}

func checkIntegrity(tasks []task.Task) []DoctorCheck {
	report := task.CheckIntegrity(tasks)
	if report.OK() {
		return []DoctorCheck{{Name: "Dependencies", Status: "ok", Message: "no self references, dangling ids or cycles"}}
	}

	var checks []DoctorCheck
	if len(report.SelfReferences) > 0 {
		checks = append(checks, DoctorCheck{
			Name:    "Self references",
			Status:  "warn",
			Message: "tasks depending on themselves: " + utils.HashIDs(report.SelfReferences),
			Hint:    "Fix with: smarttask update <id> --deps <ids>",
		})
	}
	for _, d := range report.Dangling {
		checks = append(checks, DoctorCheck{
			Name:    "Dangling dependency",
			Status:  "warn",
			Message: fmt.Sprintf("#%d depends on #%d, which does not exist", d.TaskID, d.DependencyID),
			Hint:    "It is ignored when ordering",
		})
	}
	for _, c := range report.Cycles {
		checks = append(checks, DoctorCheck{
			Name:    "Cycle",
			Status:  "warn",
			Message: task.FormatPath(c),
			Hint:    "Tasks in a cycle are ordered by score alone; remove one of the dependencies",
		})
	}
	return checks
}

func checkCrashLogs() DoctorCheck {
	logs, err := logger.ListCrashLogs()
	if err != nil || len(logs) == 0 {
		return DoctorCheck{Name: "Crash reports", Status: "ok", Message: "none"}
	}
	latest := logs[len(logs)-1] // names sort oldest first
	msg := fmt.Sprintf("%d report(s), latest %s", len(logs), latest)
	if cl, err := logger.ReadCrashLog(latest); err == nil {
		msg += fmt.Sprintf(" (%s)", utils.Truncate(cl.PanicValue, 60))
	}
	return DoctorCheck{Name: "Crash reports", Status: "warn", Message: msg}
}
