package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatbotd/internal/config"
	"chatbotd/internal/httpapi"
	"chatbotd/internal/manager"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flagConfig    string
		flagModel     string
		flagPort      int
		flagCtx       int
		flagGPULayers int
	)
	root := &cobra.Command{
		Use:           "chatbotd",
		Short:         "HTTP front end over a locally loaded llama.cpp chat model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if flagConfig != "" {
				fileCfg, err := config.Load(flagConfig)
				if err != nil {
					return fmt.Errorf("load config %s: %w", flagConfig, err)
				}
				cfg = config.Merge(cfg, fileCfg)
			}
			// Flags win over environment and file.
			if cmd.Flags().Changed("model") {
				if cfg.ModelPath, err = config.ExpandHome(flagModel); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = flagPort
			}
			if cmd.Flags().Changed("ctx") {
				cfg.ContextSize = flagCtx
			}
			if cmd.Flags().Changed("gpu-layers") {
				cfg.GPULayers = flagGPULayers
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&flagConfig, "config", "", "optional config file (.yaml|.json|.toml)")
	root.Flags().StringVar(&flagModel, "model", config.DefaultModelPath, "gguf model file path (env LLM_MODEL_PATH)")
	root.Flags().IntVar(&flagPort, "port", config.DefaultPort, "HTTP listen port (env HOST_PORT)")
	root.Flags().IntVar(&flagCtx, "ctx", config.DefaultContextSize, "context window size (env LLM_N_CTX)")
	root.Flags().IntVar(&flagGPULayers, "gpu-layers", config.DefaultGPULayers, "layers to offload to GPU (env LLM_N_GPU_LAYERS)")
	return root
}

func run(cfg config.Config) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load the model exactly once, before the listener starts accepting
	// connections. A failed load is non-fatal: the service starts in
	// degraded mode and answers 503 on /chatbot.
	handle := manager.Load(cfg, logger)
	mgr := manager.New(cfg, handle, logger)
	defer mgr.Close()

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetLogger(logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: httpapi.NewMux(mgr),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Bool("model_ready", mgr.Ready()).Msg("chatbotd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown")
	}
	return nil
}
