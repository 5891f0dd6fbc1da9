package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"i4.energy/across/atgw/serialport"
	"i4.energy/across/atgw/uat"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("mqtt-broker", "", "MQTT broker URL for URC publishing (disabled when empty)")
	flag.String("mqtt-topic", "atgw/urc", "MQTT topic prefix for published URCs")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	port, err := serialport.Open(serialport.Config{
		Name:     config.SerialPort,
		BaudRate: config.BaudRate,
	})
	if err != nil {
		logger.Error("Failed to open serial port", "error", err)
		os.Exit(1)
	}
	defer port.Close()

	uatConfig, err := uat.NewConfigBuilder().
		WithPort(port).
		Build()
	if err != nil {
		logger.Error("Failed to create core config", "error", err)
		os.Exit(1)
	}

	core, err := uat.New(uatConfig)
	if err != nil {
		logger.Error("Failed to initialize dispatcher core", "error", err)
		os.Exit(1)
	}
	port.OnIdle(func() { core.IdleHandler() })
	port.OnTxComplete(core.TxComplete)

	if config.MQTTBroker != "" {
		bridge, err := NewURCBridge(config.MQTTBroker, config.MQTTTopic, logger.With("component", "bridge"))
		if err != nil {
			logger.Error("Failed to connect to MQTT broker", "error", err)
			os.Exit(1)
		}
		defer bridge.Close()
		if err := bridge.Register(core); err != nil {
			logger.Error("Failed to register URC handlers", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Starting AT gateway", "serial_port", config.SerialPort)

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger: logger.With("component", "server"),
			Core:   core,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return core.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Gateway stopped with error", "error", err)
		os.Exit(1)
	}
}
