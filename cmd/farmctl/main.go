package main

import (
	"context"
	"encoding/json"
	"errors"
	"farmstay/client"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	requestDto "farmstay/internal/domains/bookingrequest/model/dto"
)

var (
	profilePath string
	baseURL     string
	verbose     bool
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "farmctl",
	Short:         "Command line client for the farmstay API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}

		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE:  runLogin,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Restore the stored session and show who it belongs to",
	RunE:  runWhoami,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the stored session and forget it",
	RunE:  runLogout,
}

var farmhousesCmd = &cobra.Command{
	Use:   "farmhouses",
	Short: "Search active farmhouses",
	RunE:  runFarmhouses,
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Send a booking request without an account",
	RunE:  runRequest,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", defaultProfilePath(), "Profile file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides the profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (or set FARMCTL_PASSWORD)")
	_ = loginCmd.MarkFlagRequired("email")

	farmhousesCmd.Flags().String("search", "", "Search name and description")
	farmhousesCmd.Flags().String("location", "", "Location contains")
	farmhousesCmd.Flags().Float64("min-price", 0, "Minimum price per night")
	farmhousesCmd.Flags().Float64("max-price", 0, "Maximum price per night")
	farmhousesCmd.Flags().Int("guests", 0, "Number of guests")
	farmhousesCmd.Flags().Int("page", 0, "Page")
	farmhousesCmd.Flags().Int("limit", 0, "Page size")

	requestCmd.Flags().String("name", "", "Your name")
	requestCmd.Flags().String("phone", "", "Phone number")
	requestCmd.Flags().String("email", "", "Email")
	requestCmd.Flags().String("farmhouse", "", "Farmhouse id")
	requestCmd.Flags().String("check-in", "", "Check-in date (YYYY-MM-DD)")
	requestCmd.Flags().String("check-out", "", "Check-out date (YYYY-MM-DD)")
	requestCmd.Flags().Int("guests", 1, "Number of guests")
	requestCmd.Flags().String("message", "", "Message for the host")

	for _, name := range []string{"name", "phone", "email", "check-in", "check-out"} {
		_ = requestCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(loginCmd, whoamiCmd, logoutCmd, farmhousesCmd, requestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient() (*client.Client, error) {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		profile.BaseURL = baseURL
	}

	log.Debug().Str("base_url", profile.BaseURL).Str("session", profile.SessionFile).Msg("profile loaded")

	return client.New(profile.BaseURL, client.NewFileStore(profile.SessionFile)), nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value) //nolint:wrapcheck
}

func runLogin(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if password == "" {
		password = os.Getenv("FARMCTL_PASSWORD")
	}

	if password == "" {
		return errors.New("password is required, pass --password or set FARMCTL_PASSWORD")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	session, err := c.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s), session valid until %s\n",
		email, session.Role, session.ExpiresAt.Format(time.RFC3339))

	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	session, err := c.Recover(ctx)
	if errors.Is(err, client.ErrNoSession) {
		return errors.New("not logged in, run farmctl login")
	}

	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), session)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err = c.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

	return nil
}

func runFarmhouses(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	query := url.Values{}

	for flag, param := range map[string]string{"search": "search", "location": "location"} {
		if value, _ := cmd.Flags().GetString(flag); value != "" {
			query.Set(param, value)
		}
	}

	for flag, param := range map[string]string{"min-price": "min_price", "max-price": "max_price"} {
		if value, _ := cmd.Flags().GetFloat64(flag); value > 0 {
			query.Set(param, strconv.FormatFloat(value, 'f', -1, 64))
		}
	}

	for flag, param := range map[string]string{"guests": "guests", "page": "page", "limit": "limit"} {
		if value, _ := cmd.Flags().GetInt(flag); value > 0 {
			query.Set(param, strconv.Itoa(value))
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := c.SearchFarmhouses(ctx, query)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), res)
}

func runRequest(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	req := requestDto.CreateRequest{}
	req.Name, _ = flags.GetString("name")
	req.Phone, _ = flags.GetString("phone")
	req.Email, _ = flags.GetString("email")
	req.CheckIn, _ = flags.GetString("check-in")
	req.CheckOut, _ = flags.GetString("check-out")
	req.Guests, _ = flags.GetInt("guests")

	if farmhouseID, _ := flags.GetString("farmhouse"); farmhouseID != "" {
		req.FarmhouseID = &farmhouseID
	}

	if message, _ := flags.GetString("message"); message != "" {
		req.Message = &message
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := c.SubmitBookingRequest(ctx, req)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), res)
}
