package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duebook/duebook/internal/cli"
	"github.com/duebook/duebook/internal/common"
	"github.com/duebook/duebook/internal/config"
	"github.com/duebook/duebook/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Authorize spreadsheet access via OAuth2",
		Long: `Run the interactive OAuth2 flow against Google and save the resulting
token. Requires sheets.client_id and sheets.client_secret in the config
file (or GOOGLE_SHEETS_CLIENT_ID / GOOGLE_SHEETS_CLIENT_SECRET).`,
		RunE: runAuthSheets,
	}
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	sheetsCfg := config.LoadSheetsConfig()
	if sheetsCfg.ClientID == "" || sheetsCfg.ClientSecret == "" {
		return common.NewUserError(
			"sheets client credentials are not configured; set sheets.client_id and sheets.client_secret",
			common.ErrMissingConfig,
		)
	}

	tokenFile := sheetsCfg.TokenFile
	if tokenFile == "" {
		tokenFile = config.ExpandPath("$HOME/.config/duebook/sheets-token.json")
	}

	token, err := sheets.AuthenticateInteractive(cmd.Context(), sheets.OAuth2Config{
		ClientID:     sheetsCfg.ClientID,
		ClientSecret: sheetsCfg.ClientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Authenticated with Google Sheets"))
	fmt.Println(cli.SubtleStyle.Render("Token saved to " + tokenFile))
	if token.RefreshToken != "" {
		fmt.Println(cli.SubtleStyle.Render("Refresh token issued; future runs will renew access automatically"))
	}
	return nil
}
