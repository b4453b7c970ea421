package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/remote"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session with the hosted service",
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(signupCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(statusCmd())

	return cmd
}

func loginCmd() *cobra.Command {
	var (
		email    string
		password string
		provider string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email/password or a third-party provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := newRemoteClient()
			if err != nil {
				return err
			}

			if provider != "" {
				sess, loginErr := client.ProviderLogin(ctx, provider)
				if loginErr != nil {
					return fmt.Errorf("provider sign-in failed: %w", loginErr)
				}
				fmt.Println(cli.FormatSuccess("Signed in as " + sess.User.Email))
				return nil
			}

			if email == "" || password == "" {
				return fmt.Errorf("either --provider or both --email and --password are required")
			}

			sess, err := client.SignInWithPassword(ctx, email, password)
			if err != nil {
				return fmt.Errorf("sign-in failed: %w", err)
			}

			who := email
			if sess != nil && sess.User != nil {
				who = sess.User.Email
			}
			fmt.Println(cli.FormatSuccess("Signed in as " + who))

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&provider, "provider", "",
		fmt.Sprintf("OAuth provider (%s, %s)", remote.ProviderGoogle, remote.ProviderGitHub))

	return cmd
}

func signupCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newRemoteClient()
			if err != nil {
				return err
			}

			sess, err := client.SignUp(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("sign-up failed: %w", err)
			}

			if sess == nil {
				fmt.Println(cli.FormatInfo("Account created. Check your email to confirm, then run 'scaledger auth login'."))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Account created and signed in as " + email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the cached session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}

			if st.User() == nil {
				fmt.Println(cli.FormatInfo("Not signed in."))
				return nil
			}

			st.SignOut(ctx)
			if st.User() != nil {
				return fmt.Errorf("sign-out failed; session kept")
			}

			fmt.Println(cli.FormatSuccess("Signed out."))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := newStore(cmd.Context())
			if err != nil {
				return err
			}

			snap := st.Snapshot()
			if snap.User == nil {
				fmt.Println(cli.FormatInfo("Not signed in."))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Signed in as " + snap.User.Email))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d accounts, %d transactions loaded",
				len(snap.Accounts), len(snap.Transactions))))

			return nil
		},
	}
}
