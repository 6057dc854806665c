package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodtrack/pkg/interfaces/cli/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the subassembly graph for cycles and dangling references",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if !output.Validation(cmd.OutOrStdout(), s.ws.ValidateGraph()) {
		return errors.New("graph validation failed")
	}
	return nil
}
