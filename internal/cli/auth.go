package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Log in, register, and inspect the current session.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the taskdeck server",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored credential",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}

func promptLine(label string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(passwordBytes)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}

	email := promptLine("Email: ")
	password := promptPassword("Password: ")

	fmt.Println("Logging in...")
	if err := ses.auth.Login(cmd.Context(), email, password); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", ses.auth.User().Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}

	name := promptLine("Name: ")
	email := promptLine("Email: ")
	password := promptPassword("Password: ")
	confirm := promptPassword("Confirm password: ")

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println("Creating account...")
	if err := ses.auth.Register(cmd.Context(), name, email, password); err != nil {
		return err
	}

	fmt.Printf("Account created, logged in as %s\n", ses.auth.User().Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}

	if !ses.auth.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := ses.auth.Logout(); err != nil {
		return err
	}
	_ = forgetCurrent()

	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ses, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if !ses.auth.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	// Refresh from the profile endpoint; a stale credential gets cleared here
	if err := ses.auth.FetchProfile(cmd.Context()); err != nil {
		return err
	}

	u := ses.auth.User()
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	if u.Role != "" {
		fmt.Printf("Role: %s\n", u.Role)
	}
	return nil
}
