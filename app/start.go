package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/competitions/app/observability/attr"
)

// Start serves HTTP until ctx is cancelled, then shuts the server down.
func (app *App) Start(ctx context.Context) error {
	app.Logger.InfoContext(ctx, "Starting HTTP server", attr.String("address", app.Server.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return app.WaitForShutdown(errCh)
}
