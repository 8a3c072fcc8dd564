package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvin/estately/internal/cli"
	"github.com/edvin/estately/internal/config"
	"github.com/edvin/estately/internal/landlord"
)

// connection is the resolved landlord API connection for one invocation.
type connection struct {
	Client     *landlord.Client
	BaseDomain string
	URLScheme  string
	Config     *config.Config
}

// connect resolves connection settings (flags > environment > active or
// named profile) and builds a landlord client.
func connect(cmd *cobra.Command) (*connection, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	profileName, _ := cmd.Flags().GetString("profile")
	var profile *cli.Profile
	if profileName != "" {
		profile, err = cli.LoadProfile(profileName)
		if err != nil {
			return nil, err
		}
	} else {
		// Best effort; an unset active profile is fine.
		profile, _ = cli.ActiveProfile()
	}
	if profile != nil {
		if profile.APIURL != "" {
			cfg.LandlordAPIURL = profile.APIURL
		}
		if profile.APIKey != "" {
			cfg.LandlordAPIKey = profile.APIKey
		}
		if profile.BaseDomain != "" {
			cfg.TenantBaseDomain = profile.BaseDomain
		}
	}

	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.LandlordAPIURL = v
	}
	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		cfg.LandlordAPIKey = v
	}
	if v, _ := cmd.Flags().GetString("base-domain"); v != "" {
		cfg.TenantBaseDomain = v
	}

	if cfg.LandlordAPIURL == "" {
		return nil, fmt.Errorf("no landlord API URL configured (use --api-url, LANDLORD_API_URL, or a profile)")
	}

	return &connection{
		Client:     landlord.NewClient(cfg.LandlordAPIURL, cfg.LandlordAPIKey),
		BaseDomain: cfg.TenantBaseDomain,
		URLScheme:  cfg.TenantURLScheme,
		Config:     cfg,
	}, nil
}
