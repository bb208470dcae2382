package probe

import "github.com/spf13/cobra"

func newReadiness() *cobra.Command {
	return &cobra.Command{
		Use:   "readiness",
		Short: "Checks the server readiness endpoint",
		Run: func(_ *cobra.Command, _ []string) {
			runProbe("/-/ready")
		},
	}
}
