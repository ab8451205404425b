package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"museum-gallery/internal/auth"
)

// credentials fills empty fields from GALLERY_EMAIL / GALLERY_PASSWORD, then by prompting on in.
type credentials struct {
	email    string
	password string
}

func (c *credentials) complete(in io.Reader, out io.Writer) error {
	if c.email == "" {
		c.email = os.Getenv("GALLERY_EMAIL")
	}
	if c.password == "" {
		c.password = os.Getenv("GALLERY_PASSWORD")
	}
	r := bufio.NewReader(in)
	prompt := func(label string) (string, error) {
		fmt.Fprint(out, label)
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	var err error
	if c.email == "" {
		if c.email, err = prompt("Email: "); err != nil {
			return err
		}
	}
	if c.password == "" {
		if c.password, err = prompt("Password: "); err != nil {
			return err
		}
	}
	if c.email == "" || c.password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

func (c *credentials) flags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.email, "email", "", "account email")
	cmd.Flags().StringVar(&c.password, "password", "", "account password (prompted when empty)")
}

func newLoginCmd(load func() *services) *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for the gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.complete(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			s, err := load().auth.Login(cmd.Context(), creds.email, creds.password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", displayName(s.User))
			return nil
		},
	}
	creds.flags(cmd)
	return cmd
}

func newRegisterCmd(load func() *services) *cobra.Command {
	var (
		creds credentials
		name  string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.complete(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			u, err := load().auth.Register(cmd.Context(), creds.email, creds.password, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered and signed in as %s\n", displayName(u))
			return nil
		},
	}
	creds.flags(cmd)
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newLogoutCmd(load func() *services) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load().auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func displayName(u auth.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
