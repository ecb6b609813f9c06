package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idilsaglam/profile/internal/devserver"
	"github.com/idilsaglam/profile/internal/store/jsonstore"
	"github.com/idilsaglam/profile/internal/ui"
)

const (
	demoName     = "Usuário Demo"
	demoEmail    = "demo@example.com"
	demoPassword = "demo123"
)

func doServe(opt Options) int {
	log := opt.logger()
	store := jsonstore.New(opt.Config.DataFile)
	srv, err := devserver.New(store, log)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	acc, err := srv.Seed(demoName, demoEmail, demoPassword)
	if err != nil {
		ui.Fail("seed: " + err.Error())
		return 1
	}

	httpSrv := &http.Server{
		Addr:              opt.Config.Addr,
		Handler:           srv.Router(gin.Logger(), gin.Recovery()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ui.OK("user API listening on " + opt.Config.Addr)
	fmt.Printf("data:  %s\n", store.Path())
	fmt.Printf("user:  %s (%s)\n", acc.ID, acc.Email)
	fmt.Printf("token: %s\n", acc.Token)
	fmt.Println(ui.Current().Muted.Render("export PROFILE_TOKEN=" + acc.Token + " PROFILE_USER_ID=" + acc.ID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Fail("serve: " + err.Error())
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		ui.Fail("shutdown: " + err.Error())
		return 1
	}
	log.Info("user API stopped")
	ui.OK("stopped")
	return 0
}
