package root

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

func questIDArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func parseQuestID(args []string) int64 {
	id, _ := strconv.ParseInt(args[0], 10, 64)
	return id
}
