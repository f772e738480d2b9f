package main

import (
	"fmt"
	"resultsd/internal/di"
	"resultsd/internal/models"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var (
		email     string
		password  string
		firstName string
		lastName  string
		activated bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user that can log in to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth, cleanup, err := di.InitUserAdmin(&flags)
			if err != nil {
				return err
			}
			defer cleanup()

			user := &models.User{
				Email:         email,
				FirstName:     firstName,
				LastName:      lastName,
				Authenticated: activated,
			}
			if err := auth.CreateUser(cmd.Context(), user, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Email, user.ID.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().BoolVar(&activated, "activated", true, "mark the account as already verified")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
