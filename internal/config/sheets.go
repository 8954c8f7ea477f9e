// Package config provides configuration utilities for the application.
package config

import (
	"github.com/spf13/viper"

	"github.com/duebook/duebook/internal/sheets"
)

// LoadSheetsConfig loads the spreadsheet backing configuration. Precedence:
// 1. Viper configuration (from the config file or DUEBOOK_ env vars)
// 2. Direct GOOGLE_SHEETS_* environment variables
// 3. Default values
//
// The returned config is not validated; callers check Configured() first and
// validate only when a spreadsheet backing is actually selected.
func LoadSheetsConfig() sheets.Config {
	cfg := sheets.DefaultConfig()

	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		cfg.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.sheet_name"); v != "" {
		cfg.SheetName = v
	}
	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		cfg.RefreshToken = v
	}
	if v := viper.GetString("sheets.token_file"); v != "" {
		cfg.TokenFile = ExpandPath(v)
	}
	if v := viper.GetInt("sheets.retry_attempts"); v > 0 {
		cfg.RetryAttempts = v
	}

	cfg.LoadFromEnv()
	return cfg
}
