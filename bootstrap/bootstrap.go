package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fulldump/box"
	"golang.org/x/sync/errgroup"

	"github.com/fulldump/dataview/api"
	"github.com/fulldump/dataview/configuration"
	"github.com/fulldump/dataview/service"
)

var VERSION = "dev"

func Bootstrap(c *configuration.Configuration) (start, stop func()) {

	s := service.NewService(service.ViewOptions{
		InlineFilters:                   c.InlineFilters,
		MultiSelect:                     c.MultiSelect,
		PreserveHidden:                  c.PreserveHidden,
		PreserveHiddenOnSelectionChange: c.PreserveHiddenOnSelectionChange,
	})

	b := api.Build(s, VERSION)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	if c.AccessLog {
		b.WithInterceptors(api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)))
	}
	b.WithInterceptors(
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
	)

	server := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	log.Println("listening on", ln.Addr())

	ctx, cancel := context.WithCancel(context.Background())

	stop = func() {
		cancel()
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for sig := range signalChan {
			fmt.Println("Signal received", sig.String())
			stop()
		}
	}()

	start = func() {

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			err := server.Serve(ln)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})

		g.Go(func() error {
			<-ctx.Done()
			for _, view := range s.ListViews() {
				s.DeleteView(view.Name)
			}
			return server.Shutdown(context.Background())
		})

		if err := g.Wait(); err != nil {
			fmt.Println(err.Error())
		}
	}

	return
}
