package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind carries the Cobra command metadata a controller is bound to.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entry point that can be attached to a Cobra command.
type Controller interface {
	GetBind() ControllerBind
	AddFlags(cmd *cobra.Command)
	Execute(cmd *cobra.Command, arguments []string) error
}
