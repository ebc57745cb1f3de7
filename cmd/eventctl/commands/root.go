package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/event-marketplace/pkg/client"
)

const defaultAPIURL = "http://localhost:8080/api"

var (
	apiURL string
	home   string
	api    *client.Client
)

var errNotSignedIn = errors.New("not signed in, run `eventctl login` first")

// Execute runs the CLI until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "eventctl",
		Short:        "Command-line client for the event marketplace API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = os.Getenv("EVENTCTL_API_URL")
			}
			if apiURL == "" {
				apiURL = defaultAPIURL
			}
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".eventctl")
			}

			session, err := client.OpenSession(filepath.Join(home, "session.json"))
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if os.Getenv("EVENTCTL_DEBUG") != "" {
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}

			api = client.New(apiURL,
				client.WithSession(session),
				client.WithLogger(logger),
				client.WithRateLimit(rate.Limit(10), 5),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default $EVENTCTL_API_URL or "+defaultAPIURL+")")
	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.eventctl)")

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		registerCmd(),
		vendorsCmd(),
		eventsCmd(),
		chatCmd(),
		notificationsCmd(),
		adminCmd(),
	)
	return root
}

// currentUser returns the signed-in user from the session.
func currentUser() (*client.User, error) {
	user, err := api.Session().User()
	if err != nil {
		return nil, err
	}
	if user == nil || !api.Session().SignedIn() {
		return nil, errNotSignedIn
	}
	return user, nil
}
