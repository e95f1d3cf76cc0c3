package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ometa/lovemonster-cli-go/internal/api"
	"github.com/ometa/lovemonster-cli-go/internal/core"
	"github.com/ometa/lovemonster-cli-go/internal/output"
	"github.com/spf13/cobra"
)

var errSessionExpired = errors.New("session expired; refresh LOVEMONSTER_COOKIE via the Okta login flow")

func init() {
	// Add all subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(whoamiCmd)

	// List command flags
	listCmd.Flags().String("user", "", "Only loves involving this username")
	listCmd.Flags().String("filter", "all", "With --user: sent, received, or all")

	// Send command flags
	sendCmd.Flags().String("to", "", "Username of the recipient")
	sendCmd.Flags().String("from", "", "Username of the sender (defaults to the authenticated user)")
	sendCmd.Flags().String("reason", "", "Reason for the love")
	sendCmd.Flags().String("message", "", "Optional personalized message")
	sendCmd.Flags().Bool("private", false, "Send privately")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("reason")
}

// listCmd handles the list subcommand
var listCmd = &cobra.Command{
	Use:   "list [page]",
	Short: "List recent loves",
	Args:  cobra.MaximumNArgs(1),
	RunE:  handleList,
}

// sendCmd handles sending a love
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a love to a user",
	RunE:  handleSend,
}

// whoamiCmd prints the authenticated account
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Verify the session cookie and print the account",
	RunE:  handleWhoami,
}

func handleList(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("user")
	filter, _ := cmd.Flags().GetString("filter")

	page := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid page '%s'", args[0])
		}
		page = parsed
	}

	var filterUser *api.User
	association := api.Association("")
	if username != "" {
		filterUser = &api.User{Username: username}
		switch filter {
		case "sent":
			association = api.AssociationLover
		case "received":
			association = api.AssociationLovee
		case "all", "":
			association = api.AssociationAll
		default:
			return fmt.Errorf("invalid filter '%s' (expected sent, received, or all)", filter)
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	core.ProgressPrint(fmt.Sprintf("Fetching loves (page %d)…", page), quiet)

	loves, totalPages, err := listLovesSync(client, page, filterUser, association)
	if err != nil {
		return err
	}

	if raw {
		output.PrintJSON(output.LovesJSON(loves))
	} else {
		output.PrintLoves(loves)
		core.ProgressPrint(fmt.Sprintf("Page %d of %d", page, totalPages), quiet)
	}

	return nil
}

func handleSend(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	from, _ := cmd.Flags().GetString("from")
	reason, _ := cmd.Flags().GetString("reason")
	message, _ := cmd.Flags().GetString("message")
	private, _ := cmd.Flags().GetBool("private")

	client, err := newClient()
	if err != nil {
		return err
	}

	var lover *api.User
	if from != "" {
		lover = &api.User{Username: from}
	} else {
		lover, err = authenticateSync(client)
		if err != nil {
			return err
		}
	}

	love := api.Love{
		Reason:    reason,
		Lover:     lover,
		Lovee:     &api.User{Username: to},
		Message:   message,
		IsPrivate: private,
	}

	core.ProgressPrint(fmt.Sprintf("Sending love to %s…", to), quiet)

	if err := makeLoveSync(client, love); err != nil {
		return err
	}

	core.ProgressPrint("Love sent.", quiet)
	return nil
}

func handleWhoami(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	user, err := authenticateSync(client)
	if err != nil {
		return err
	}

	if raw {
		output.PrintJSON(map[string]interface{}{
			"email":    user.Email,
			"username": user.Username,
			"name":     user.Name,
		})
	} else {
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
	}

	return nil
}

// newClient builds a client from the environment config.
func newClient() (*api.Client, error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg, nil, verbose), nil
}

// cookie returns the configured session cookie, reduced to the auth
// cookies the backend needs.
func cookie() (string, error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Cookie == "" {
		return "", errors.New("LOVEMONSTER_COOKIE is not set; complete the Okta login flow and export the cookie header")
	}
	return api.FilterAuthCookies(cfg.Cookie), nil
}

type listOutcome struct {
	loves      []api.Love
	totalPages int
	err        error
}

// listLovesSync bridges the async ListLoves call for command use.
func listLovesSync(client *api.Client, page int, filterUser *api.User, association api.Association) ([]api.Love, int, error) {
	done := make(chan listOutcome, 1)

	err := client.ListLoves(api.LoveListHandler{
		OnSuccess: func(loves []api.Love, totalPages int) {
			done <- listOutcome{loves: loves, totalPages: totalPages}
		},
		OnFail: func(messages []string) {
			done <- listOutcome{err: failureError(messages)}
		},
		OnAuthenticationFailure: func() {
			done <- listOutcome{err: errSessionExpired}
		},
	}, page, filterUser, association)
	if err != nil {
		return nil, 0, err
	}

	outcome := <-done
	return outcome.loves, outcome.totalPages, outcome.err
}

// makeLoveSync bridges the async MakeLove call for command use.
func makeLoveSync(client *api.Client, love api.Love) error {
	done := make(chan error, 1)

	client.MakeLove(love, api.LoveHandler{
		OnSuccess: func(api.Love) {
			done <- nil
		},
		OnFail: func(messages []string) {
			done <- failureError(messages)
		},
		OnAuthenticationFailure: func() {
			done <- errSessionExpired
		},
	})

	return <-done
}

// authenticateSync bridges the async Authenticate call for command use.
func authenticateSync(client *api.Client) (*api.User, error) {
	authCookies, err := cookie()
	if err != nil {
		return nil, err
	}

	var user *api.User
	errCh := make(chan error, 1)

	client.Authenticate(authCookies, api.AuthenticationHandler{
		OnSuccess: func(u *api.User) {
			user = u
			errCh <- nil
		},
		OnFail: func(messages []string) {
			errCh <- failureError(messages)
		},
		OnAuthenticationFailure: func() {
			errCh <- errSessionExpired
		},
	})

	if err := <-errCh; err != nil {
		return nil, err
	}
	return user, nil
}

// failureError folds a dispatcher message list into a single error.
func failureError(messages []string) error {
	if len(messages) == 0 {
		return errors.New("request failed")
	}
	return fmt.Errorf("request failed: %s", strings.Join(messages, "; "))
}
