package main

import (
	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/spf13/cobra"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(
		newUsersListCmd(a),
		newUsersGetCmd(a),
		newUsersRegisterCmd(a),
		newUsersUpdateCmd(a),
		newUsersRemoveCmd(a),
		newUsersLoginCmd(a),
	)
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users with the jobs they applied to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.repos.Users.FindAll(cmd.Context())
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), users)
		},
	}
}

func newUsersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.repos.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newUsersRegisterCmd(a *app) *cobra.Command {
	var in model.RegisterUserInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.repos.Users.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "username (required)")
	f.StringVar(&in.Password, "password", "", "password (required)")
	f.StringVar(&in.FirstName, "first-name", "", "first name (required)")
	f.StringVar(&in.LastName, "last-name", "", "last name (required)")
	f.StringVar(&in.Email, "email", "", "email address (required)")
	f.BoolVar(&in.IsAdmin, "admin", false, "grant admin rights")
	return cmd
}

func newUsersUpdateCmd(a *app) *cobra.Command {
	var (
		firstName, lastName, password, email string
		isAdmin                              bool
	)

	cmd := &cobra.Command{
		Use:   "update <username>",
		Short: "Change the given fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()

			// Only flags set on the command line take part in the update.
			var in model.UpdateUserInput
			if f.Changed("first-name") {
				in.FirstName = &firstName
			}
			if f.Changed("last-name") {
				in.LastName = &lastName
			}
			if f.Changed("password") {
				in.Password = &password
			}
			if f.Changed("email") {
				in.Email = &email
			}
			if f.Changed("admin") {
				in.IsAdmin = &isAdmin
			}

			user, err := a.repos.Users.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}

	f := cmd.Flags()
	f.StringVar(&firstName, "first-name", "", "new first name")
	f.StringVar(&lastName, "last-name", "", "new last name")
	f.StringVar(&password, "password", "", "new password")
	f.StringVar(&email, "email", "", "new email address")
	f.BoolVar(&isAdmin, "admin", false, "admin rights")
	return cmd
}

func newUsersRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Delete a user and their applications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.repos.Users.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
		},
	}
}

func newUsersLoginCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Check a user's credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.repos.Users.Authenticate(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to check")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
