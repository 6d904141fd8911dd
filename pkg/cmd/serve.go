package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/cache"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/catalog"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/config"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/server"
	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/store"
)

var RootCmd = &cobra.Command{
	Use:   RootCmdName,
	Short: RootCmdShort,
	Long:  RootCmdLong,
}

func Execute() {

	if err := RootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(-1)
	}
}

func init() {
	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(MigrateCmd)
	viper.BindPFlags(ServeCmd.Flags())
}

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		Run:   serveCmdFunc(),
	}
)

func serveCmdFunc() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {

		log.Println("Started serve cmd")

		// A missing .env is fine; the environment may be set by the host.
		_ = godotenv.Load()
		cfg := config.Load()

		ctx := context.Background()

		var responseCache cache.Cache
		if cfg.RedisURL != "" {
			redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, cache.DefaultTTL)
			if err != nil {
				log.Fatalf("connecting to redis: %v", err)
			}
			defer redisCache.Close()
			responseCache = redisCache
		} else {
			responseCache = cache.NewMemory()
		}

		var client *catalog.Client
		if cfg.CatalogAPIURL != "" {
			client = catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogAPIKey, nil)
		} else {
			log.Println("No upstream catalog configured; serving fallback data")
		}
		source := catalog.NewSource(client, responseCache, log.Default())

		var st *store.Store
		if cfg.DatabaseURL != "" {
			var err error
			st, err = store.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				log.Fatalf("opening database: %v", err)
			}
			defer st.Close()
			if err := seedCars(ctx, st); err != nil {
				log.Fatalf("seeding cars: %v", err)
			}
		}

		sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))

		serve := server.NewHTTPServer(cfg.ServerAddress, source, st, sessionStore)

		signalCh := make(chan os.Signal, 1)

		go func() {
			if err := serve.ListenAndServe(); err != nil {
				log.Printf("Shutting down the server...%v", err)
				signalCh <- os.Interrupt

			}
		}()

		signal.Notify(signalCh, os.Interrupt)

		sig := <-signalCh

		log.Printf("Shutdown the server...%s", sig.String())
	}
}

// seedCars fills an empty car table from the static catalog so the
// persistence path has data to search.
func seedCars(ctx context.Context, st *store.Store) error {
	n, err := st.CountCars(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	records := catalog.Generate(catalog.Brands(), nil, time.Now().Year())
	return st.SeedCars(ctx, catalog.MapRecords(records))
}
