package app

import (
	"context"
	"fmt"
	"time"
)

// ShutdownTimeout bounds how long in-flight requests may take to finish.
const ShutdownTimeout = 10 * time.Second

// WaitForShutdown stops the server, waits for the serve loop to exit and
// releases the app's resources.
func (app *App) WaitForShutdown(serveErr <-chan error) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	app.Logger.InfoContext(ctx, "Shutting down HTTP server")
	if err := app.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := <-serveErr; err != nil {
		return err
	}

	if err := app.Close(ctx); err != nil {
		return err
	}
	app.Logger.InfoContext(ctx, "Application shut down gracefully")
	return nil
}
