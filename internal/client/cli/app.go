package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/bankaccounts/internal/client/client"
	"github.com/dmitrijs2005/bankaccounts/internal/client/config"
	"github.com/dmitrijs2005/bankaccounts/internal/client/services"

	_ "modernc.org/sqlite"
)

type App struct {
	config          *config.Config
	db              *sql.DB
	authService     services.AuthService
	accountsService services.AccountService
	reader          *bufio.Reader
	out             io.Writer
}

// NewApp opens the session store and builds the services for cfg.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, c.ServerURL)
	acs := services.NewAccountService(apiClient, as)

	return &App{
		config:          c,
		db:              db,
		authService:     as,
		accountsService: acs,
		reader:          bufio.NewReader(in),
		out:             out,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
