// Package serve implements the serve command, which runs the HTTP server.
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/iso20022-gen/cmd/common"
	"fjacquet/iso20022-gen/cmd/root"
	"fjacquet/iso20022-gen/internal/config"
	"fjacquet/iso20022-gen/internal/server"

	"github.com/spf13/cobra"
)

var (
	host string
	port int
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve message generation and parsing over HTTP",
	Long: `Serve starts an HTTP server with the following routes:

  GET  /health               liveness probe
  POST /generate             multipart form: message_code, xsd_file, payload_file or payload_text
  POST /parse?message_code=  XML body, returns the payload as JSON
  GET  /download/{filename}  a document produced by /generate

Host and port default to server.host and server.port from the configuration.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "Listen address (default from configuration)")
	Cmd.Flags().IntVar(&port, "port", 0, "Listen port (default from configuration)")
}

// Options derives server options from the configuration and the flags.
func Options(cfg *config.Config, hostFlag string, portFlag int) server.Options {
	o := server.Options{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		StorageDir:     cfg.Output.Directory,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
	}
	if hostFlag != "" {
		o.Host = hostFlag
	}
	if portFlag != 0 {
		o.Port = portFlag
	}
	return o
}

func serveFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	log := root.GetLogger()

	srv, err := server.NewServer(Options(c.GetConfig(), host, port), c.GetAssembler(), c.GetParser(), log)
	if err != nil {
		common.Exit(log, "creating server", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		common.Exit(log, "running server", err)
	}
}
