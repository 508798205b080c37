package main

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/spf13/cobra"
)

// parseJobID parses a job id. jobs.id is an INTEGER column, so anything
// that does not fit in 32 bits is rejected here.
func parseJobID(arg string) (int, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q: must be a 32-bit integer", arg)
	}
	return int(id), nil
}

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <username> <jobID>",
		Short: "Apply a user to a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseJobID(args[1])
			if err != nil {
				return err
			}

			application, err := a.repos.Users.ApplyForJob(cmd.Context(), args[0], jobID)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), application)
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <username> <jobID> <status>",
		Short:     "Set the status of a job application",
		Long:      "Set the status of a job application to one of: interested, applied, accepted, rejected.",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"interested", "applied", "accepted", "rejected"},
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseJobID(args[1])
			if err != nil {
				return err
			}

			application, err := a.repos.Users.UpdateAppStatus(cmd.Context(), args[0], jobID, model.ApplicationStatus(args[2]))
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), application)
		},
	}
}
