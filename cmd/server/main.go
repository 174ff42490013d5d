package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/castlemilk/taxdoc/internal/config"
	"github.com/castlemilk/taxdoc/internal/logger"
	"github.com/castlemilk/taxdoc/internal/rules"
	"github.com/castlemilk/taxdoc/internal/service"
	"github.com/castlemilk/taxdoc/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel)

	ruleSet := rules.Builtin()
	if cfg.RulesDir != "" {
		loaded, err := rules.LoadDir(cfg.RulesDir)
		if err != nil {
			log.Error("failed to load rule catalogs", "dir", cfg.RulesDir, "error", err)
			os.Exit(1)
		}
		ruleSet = loaded
		log.Info("loaded rule catalogs", "dir", cfg.RulesDir, "years", ruleSet.Years())
	}

	st := store.NewMemoryStore()
	defer st.Close()

	svc := service.NewTaxService(st, ruleSet, log)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", svc.Routes()))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		AllowCredentials: true,
	})
	handler := c.Handler(mux)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	log.Info("starting server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
