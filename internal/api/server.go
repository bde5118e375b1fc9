package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

const tempoDesligamento = 10 * time.Second

// Servir atende em addr até ctx ser cancelado e então desliga com prazo.
func Servir(ctx context.Context, addr string, h http.Handler, log hclog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("servidor ouvindo", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("desligando servidor", "addr", addr)
		sctx, cancel := context.WithTimeout(context.Background(), tempoDesligamento)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
