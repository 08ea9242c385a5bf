package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pweza/pweza-admin/pkg/client"
)

var errNotSignedIn = errors.New("not signed in, run: pweza login")

func newLoginCmd(o *options) *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for the console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(o)
			if err != nil {
				return err
			}
			defer e.Close() //nolint:errcheck

			out := cmd.OutOrStdout()
			lines := bufio.NewReader(cmd.InOrStdin())
			if phone == "" {
				fmt.Fprint(out, "Phone number: ")
				if phone, err = readLine(lines); err != nil {
					return fmt.Errorf("read phone number: %w", err)
				}
			}
			phone = strings.TrimSpace(phone)
			fmt.Fprint(out, "Password: ")
			password, err := readSecret(cmd.InOrStdin(), lines, out)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if phone == "" || password == "" {
				return errors.New("phone number and password are required")
			}

			s, err := e.manager.Login(cmd.Context(), phone, password)
			if err != nil {
				return fmt.Errorf("login failed: %s", client.Message(err))
			}
			printLogo(out)
			fmt.Fprintf(out, "\n  Signed in as %s%s%s (%s).\n\n", ansiBold, s.User.Name, ansiReset, s.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number (prompted when empty)")
	return cmd
}

func newLogoutCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(o)
			if err != nil {
				return err
			}
			defer e.Close() //nolint:errcheck

			out := cmd.OutOrStdout()
			s, err := e.restore(cmd.Context())
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Fprintln(out, "Not signed in.")
				return nil
			}
			s.Terminate()
			<-s.LoggedOut()
			fmt.Fprintln(out, "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(o)
			if err != nil {
				return err
			}
			defer e.Close() //nolint:errcheck

			s, err := e.restore(cmd.Context())
			if err != nil {
				return err
			}
			if s == nil {
				return errNotSignedIn
			}
			u := s.User
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  phone  %s\n  role   %s\n  api    %s\n", u.Name, u.PhoneNumber, u.Role, e.cfg.API.BaseURL)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pweza "+version)
		},
	}
}

func newConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(o)
			if err != nil {
				return err
			}
			doc, err := cfg.YAML()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.File != "" {
				fmt.Fprintf(out, "# %s\n", cfg.File)
			} else {
				fmt.Fprintln(out, "# defaults and environment, no config file")
			}
			_, err = out.Write(doc)
			return err
		},
	}
}

// readLine reads one line without its terminator. A final line without a
// newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret reads a password without echo when in is a terminal, and as a
// plain line otherwise.
func readSecret(in io.Reader, lines *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(lines)
}
