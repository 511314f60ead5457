package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkg "git.solsynth.dev/hypernet/circle/pkg/internal"
	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/circle/pkg/internal/http"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____ _          _\n / ___(_)_ __ ___| | ___\n| |   | | '__/ __| |/ _ \\\n| |___| | | | (__| |  __/\n \\____|_|_|  \\___|_|\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Circle"), pkg.AppVersion)
	fmt.Printf("The social feed frontend service in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	viper.SetDefault("bind", "0.0.0.0:8445")
	viper.SetDefault("grpc_bind", "0.0.0.0:7445")
	viper.SetDefault("gateway.timeout", gap.DefaultTimeout)
	viper.SetDefault("gateway.user_agent", "Hypernet.Circle/"+pkg.AppVersion)
	viper.SetDefault("sessions.store", "memory")
	viper.SetDefault("sessions.cookie", "circle_visitor")
	viper.SetDefault("sessions.ttl", 7*24*time.Hour)
	viper.SetDefault("workspaces.idle", 30*time.Minute)
	viper.SetDefault("workspaces.sweep", "@every 5m")
	viper.SetDefault("languages", services.DefaultDetectedLanguages)

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	if viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Connect to gateway
	if err := gap.InitializeToGateway(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when configuring the gateway...")
	}

	// Prepare sessions
	if err := services.InitializeSessions(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing the session store...")
	}

	// Load language models
	services.InitializeLanguageDetector(viper.GetStringSlice("languages"))

	services.Workspaces = services.NewWorkspaceRegistry(gap.Gw, viper.GetDuration("workspaces.idle"))

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(viper.GetString("workspaces.sweep"), services.DoWorkspaceSweep); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling the workspace sweep...")
	}
	quartz.Start()

	// Server
	server := http.NewServer()
	go server.Listen()

	rpc := grpc.NewGrpc()
	go func() {
		if err := rpc.Listen(); err != nil {
			log.Error().Err(err).Msg("An error occurred when starting grpc server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rpc.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
	quartz.Stop()
}
