package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"

	"github.com/campushub/admission-portal/backend"
	"github.com/campushub/admission-portal/internal/config"
	"github.com/campushub/admission-portal/server"
	"github.com/campushub/admission-portal/session/tokenstore"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	api := backend.New(c.GetAPIBaseURL())
	store := newTokenStore(c)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, api, store)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// newTokenStore picks Redis when an address is configured, otherwise the
// tokens live in process memory and die with it.
func newTokenStore(c config.Config) tokenstore.Store {
	addr := c.GetRedisAddr()
	if addr == "" {
		log.Printf("No Redis address configured, using in-memory token store\n")
		return tokenstore.NewInMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: c.GetRedisPassword(),
	})
	return tokenstore.NewRedisStore(client, c.GetSessionTTL())
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
