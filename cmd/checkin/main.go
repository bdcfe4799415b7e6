package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"expocheckin/internal/adapters/discord"
	"expocheckin/internal/adapters/rest"
	"expocheckin/internal/adapters/scanner"
	"expocheckin/internal/application"
	"expocheckin/internal/config"
	"expocheckin/internal/infrastructure/database"
	"expocheckin/internal/infrastructure/i18n"
	"expocheckin/internal/infrastructure/journal"
	"expocheckin/internal/infrastructure/verifier"
	"expocheckin/internal/ports/output"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuración inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		sinks  []output.ScanJournal
		reader output.JournalReader
		pool   *pgxpool.Pool
	)
	if cfg.JournalEnabled() {
		pool, err = openJournal(ctx, cfg)
		if err != nil {
			log.Printf("⚠️ Bitácora desactivada: %v", err)
		} else {
			repo := database.NewJournalRepository(pool)
			sinks = append(sinks, repo)
			reader = repo
		}
	}
	if cfg.DiscordEnabled() {
		feed, err := discord.NewStaffFeed(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Printf("⚠️ Canal de staff desactivado: %v", err)
		} else {
			sinks = append(sinks, feed)
		}
	}
	if len(sinks) == 0 {
		sinks = append(sinks, journal.LogJournal{})
	}

	backend := verifier.NewClient(cfg.VerifierURL, cfg.HTTPTimeout)
	cache := application.NewAttendeeCache(backend)
	gate := application.NewScanGate(cfg.ScanCooldown)
	svc := application.NewCheckinService(
		cache,
		gate,
		backend,
		backend,
		application.SideEffects{Printer: backend, Camera: backend, Notifier: backend},
		journal.NewFanout(sinks...),
		application.CheckinOptions{
			VerifiedBy:        cfg.VerifierID,
			PrintMode:         cfg.PrintMode,
			SettleDelay:       cfg.ScanSettleDelay,
			SideEffectTimeout: cfg.SideEffectTimeout,
		},
	)
	// A failed first load is not fatal: lookups go to the network.
	_ = svc.Init(ctx)

	tr := i18n.NewTranslator(cfg.DefaultLocale)
	srv := rest.NewServer(cfg.HTTPAddr, rest.NewRouter(rest.NewHandler(svc, reader, tr), cfg.CORSOrigins))

	go func() {
		log.Printf("✅ Verificador escuchando en %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ Servidor HTTP detenido: %v", err)
			stop()
		}
	}()

	if cfg.ScannerInput == config.ScannerStdin {
		go func() {
			src := scanner.NewKeyboardSource(os.Stdin, cfg.ScannerDebounce)
			if err := scanner.Pump(ctx, src, svc, ""); err != nil {
				log.Printf("⚠️ Lector de teclado detenido: %v", err)
			}
		}()
	}

	<-ctx.Done()
	log.Println("Cerrando verificador...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Cierre HTTP incompleto: %v", err)
	}
	svc.Close()
	if pool != nil {
		pool.Close()
	}
	log.Println("✅ Verificador cerrado.")
}

func openJournal(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	return database.NewPool(ctx, cfg.DatabaseURL)
}
