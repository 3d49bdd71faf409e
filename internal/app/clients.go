package app

import (
	"context"
	"errors"

	"repair_desk/internal/config"
	"repair_desk/internal/datastore"
	"repair_desk/internal/notifications"
	"repair_desk/internal/repair"
	"repair_desk/internal/sheets"

	"github.com/rs/zerolog/log"
)

var errNoCredentials = errors.New("no Google service account credentials configured")

// InitializeStore connects the datastore once. With memory set, an
// in-process table replaces Google Sheets.
func InitializeStore(ctx context.Context, cfg config.Config, memory bool) *datastore.Adapter {
	if memory {
		log.Warn().Msg("Using in-memory datastore; records are lost on exit")
		return datastore.NewAdapter(datastore.NewMemory(repair.Header))
	}
	if !cfg.HasCredentials() {
		log.Error().Err(errNoCredentials).Msg("Datastore unavailable; every request will fail until restart")
		return datastore.Unavailable(errNoCredentials)
	}

	return datastore.Connect(ctx, func(ctx context.Context) (datastore.Table, error) {
		client, err := newSheetsClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		table, err := sheets.Open(ctx, client, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("spreadsheet_id", cfg.SpreadsheetID).
			Str("sheet", cfg.SheetName).
			Msg("Connected to Google Sheets")
		return table, nil
	})
}

func newSheetsClient(ctx context.Context, cfg config.Config) (*sheets.Client, error) {
	if cfg.CredentialsJSON != "" {
		return sheets.NewClient(ctx, []byte(cfg.CredentialsJSON))
	}
	return sheets.NewClientFromFile(ctx, cfg.CredentialsFile)
}

// InitializeNotificationClient creates and returns the notification client
func InitializeNotificationClient(cfg config.Config) *notifications.Client {
	n := cfg.Notifications
	log.Debug().
		Bool("enabled", n.Enabled).
		Str("base_url", n.URL).
		Str("topic", n.Topic).
		Msg("Initializing notification client")

	client := notifications.NewClient(notifications.Options{
		BaseURL:  n.URL,
		Topic:    n.Topic,
		Enabled:  n.Enabled,
		Priority: n.Priority,
		Delivery: n.Delivery(),
		BoardURL: n.BoardURL,
	})

	if n.Enabled {
		log.Info().Str("topic", n.Topic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}
	return client
}
