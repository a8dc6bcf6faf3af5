package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/fleet-atlas/pkg/services/config"
)

type ConnectCmd struct {
	userID          int64
	serviceID       int64
	credentialsPath string
	profile         string
	env             *Env
}

func NewIntegrationsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrations",
		Short: "Manage fleet integrations",
	}
	cmd.AddCommand(newConnectCmd(env))
	return cmd
}

func newConnectCmd(env *Env) *cobra.Command {
	cc := &ConnectCmd{env: env}
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect an integration service using a credentials profile",
		RunE:  cc.run,
	}

	cmd.Flags().Int64Var(&cc.userID, "user", 0, "User id")
	cmd.Flags().Int64Var(&cc.serviceID, "service", 0, "Integration service id")
	cmd.Flags().StringVar(&cc.credentialsPath, "credentials", "", "Path to the INI credentials file")
	cmd.Flags().StringVar(&cc.profile, "profile", "", "Profile (section) of the credentials file")

	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("credentials")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (cc *ConnectCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	registry, err := config.NewCredentialRegistry(cc.credentialsPath)
	if err != nil {
		return err
	}
	credentials, err := registry.GetCredentials(ctx, cc.profile)
	if err != nil {
		profiles, _ := registry.GetProfiles(ctx)
		return fmt.Errorf("%w (available profiles: %v)", err, profiles)
	}

	return cc.env.withBackend(cmd, func(ctx context.Context, b *Backend) error {
		integration, err := b.Integrations.Connect(ctx, cc.userID, cc.serviceID, credentials)
		if err != nil {
			return err
		}
		return cc.env.Reporter.Message("integration %d created with status %s", integration.ID, integration.Status)
	})
}
