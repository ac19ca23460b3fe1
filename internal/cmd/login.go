package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/labhacker007/joti-cli/internal/api"
	"github.com/labhacker007/joti-cli/internal/config"
)

// RunInteractiveLogin prompts for credentials, calls the login API, and
// persists the session token to the config file.
func RunInteractiveLogin(in io.Reader, out io.Writer, serverURL string) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}

	password, err := readPassword(reader, out)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	baseURL := strings.TrimSpace(serverURL)
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	client := api.NewClient(baseURL, "")
	resp, err := client.Login(username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := &config.Config{
		Token:    resp.Token,
		Username: resp.Username,
		Theme:    "dark",
	}
	if baseURL != api.DefaultBaseURL {
		cfg.ServerURL = baseURL
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", resp.Username)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// readPassword masks input when stdin is a terminal and falls back to a
// plain line read otherwise (pipes, tests).
func readPassword(reader *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// LoginCmd returns the `joti login` command.
func LoginCmd() *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Joti server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout, serverURL)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL (default "+api.DefaultBaseURL+")")
	return cmd
}
