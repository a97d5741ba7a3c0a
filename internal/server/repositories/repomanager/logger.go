package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/bankaccounts/internal/logging"
	"github.com/pressly/goose/v3"
)

// exit is a seam for testing Fatalf.
var exit = os.Exit

// gooseLogger forwards goose's printf-style output to a logging.Logger.
type gooseLogger struct {
	l logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	exit(1)
}

// SetLogger routes goose's migration output through l. goose keeps a single
// process-wide logger, so this affects every manager.
func SetLogger(l logging.Logger) {
	goose.SetLogger(gooseLogger{l: l})
}
