package probe

import (
	"github.com/spf13/cobra"

	"github/chapool/tron-custody/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
