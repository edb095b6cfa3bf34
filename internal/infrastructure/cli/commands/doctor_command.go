package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}

			report, err := container.DoctorService.Run(cmd.Context())
			// Display report even if there were errors
			displayDoctorReport(cmd.OutOrStdout(), report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.Failed() {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
