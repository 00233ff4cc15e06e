// Command draughtsplay-server runs the DraughtsPlay analysis API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkoopman/draughtsplay/internal/server"
)

const version = "0.1.0"

func main() {
	host := flag.String("host", "localhost", "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", 8080, "Port to listen on")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	searchWorkers := flag.Int("search-workers", 4, "Max concurrent searches")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("DraughtsPlay API Server v%s\n", version)
		os.Exit(0)
	}

	config := server.Config{
		Host:             *host,
		Port:             *port,
		ReadTimeout:      *readTimeout,
		WriteTimeout:     *writeTimeout,
		IdleTimeout:      60 * time.Second,
		MaxSearchWorkers: *searchWorkers,
	}

	srv := server.NewServer(config, version)

	if err := srv.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
