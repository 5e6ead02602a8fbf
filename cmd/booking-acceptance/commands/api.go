package commands

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/factory"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Log in with the admin credentials and print the Cookie header",
	RunE: func(cmd *cobra.Command, _ []string) error {
		header, ex, err := client.NewAuthClient(cfg).AdminToken(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("error requesting token: %w", err)
		}
		if header == "" {
			return fmt.Errorf("login rejected with status %d: %s", ex.StatusCode, ex.Text())
		}
		fmt.Fprintln(cmd.OutOrStdout(), header)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the booking API is up",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ex, err := client.NewBookingClient(cfg).Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("error checking health: %w", err)
		}
		printExchange(cmd, ex)
		if ex.StatusCode != http.StatusOK {
			return fmt.Errorf("booking API at %s is not healthy", cfg.BaseURL())
		}
		return nil
	},
}

var bookingCmd = &cobra.Command{
	Use:   "booking",
	Short: "Manage bookings",
}

var createBookingCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a generated valid booking",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ex, err := client.NewBookingClient(cfg).CreateBooking(cmd.Context(), factory.ValidBooking())
		if err != nil {
			return fmt.Errorf("error creating booking: %w", err)
		}
		printExchange(cmd, ex)
		if _, ok := client.BookingIDFrom(ex); !ok {
			return fmt.Errorf("booking was not created")
		}
		return nil
	},
}

var getBookingCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a booking by its ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBookingID(args[0])
		if err != nil {
			return err
		}
		cookie, err := adminCookie(cmd)
		if err != nil {
			return err
		}
		ex, err := client.NewBookingClient(cfg).GetBooking(cmd.Context(), id, client.WithCookie(cookie))
		if err != nil {
			return fmt.Errorf("error getting booking: %w", err)
		}
		printExchange(cmd, ex)
		if !ex.IsSuccess() {
			return fmt.Errorf("booking %d could not be read", id)
		}
		return nil
	},
}

var deleteBookingCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a booking by its ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBookingID(args[0])
		if err != nil {
			return err
		}
		cookie, err := adminCookie(cmd)
		if err != nil {
			return err
		}
		ex, err := client.NewBookingClient(cfg).DeleteBooking(cmd.Context(), id, client.WithCookie(cookie))
		if err != nil {
			return fmt.Errorf("error deleting booking: %w", err)
		}
		printExchange(cmd, ex)
		if !ex.IsSuccess() {
			return fmt.Errorf("booking %d could not be deleted", id)
		}
		return nil
	},
}

func init() {
	bookingCmd.AddCommand(createBookingCmd)
	bookingCmd.AddCommand(getBookingCmd)
	bookingCmd.AddCommand(deleteBookingCmd)
}

// GetTokenCmd returns the token command
func GetTokenCmd() *cobra.Command {
	return tokenCmd
}

// GetHealthCmd returns the health command
func GetHealthCmd() *cobra.Command {
	return healthCmd
}

// GetBookingCmd returns the booking command
func GetBookingCmd() *cobra.Command {
	return bookingCmd
}

func parseBookingID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q: must be a positive number", arg)
	}
	return id, nil
}

func adminCookie(cmd *cobra.Command) (string, error) {
	header, ex, err := client.NewAuthClient(cfg).AdminToken(cmd.Context(), cfg)
	if err != nil {
		return "", fmt.Errorf("error requesting token: %w", err)
	}
	if header == "" {
		return "", fmt.Errorf("login rejected with status %d", ex.StatusCode)
	}
	return header, nil
}

func printExchange(cmd *cobra.Command, ex *client.Exchange) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "HTTP %d\n", ex.StatusCode)
	if len(ex.Body) > 0 {
		fmt.Fprintln(out, strings.TrimRight(ex.Pretty(), "\n"))
	}
}
