// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db/kvdb"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db/postgres"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/server"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/service"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/storage"
)

func main() {
	var (
		serviceName = flag.String("service-name", "wedding-scrolls", "otel service name")
		addr        = flag.String("addr", "0.0.0.0:8080", "default server address")
		dbStr       = flag.String("db", "kvdb://testdata/wedding.db", "database connection string, kvdb://<path> or postgres://<dsn>")
		otlpAddr    = flag.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg = flag.String("log-level", "INFO", "log level")
		staticDir   = flag.String("static-dir", "", "path to static directory")
		jwtSecret   = flag.String("jwt-secret", "", "secret for signing session tokens, required")

		s3Endpoint  = flag.String("s3-endpoint", "", "S3 endpoint, uploads disabled when empty. Example value: http://localhost:9000")
		s3Region    = flag.String("s3-region", "us-east-1", "S3 region")
		s3Bucket    = flag.String("s3-bucket", "wedding-images", "S3 bucket for uploaded images")
		s3AccessKey = flag.String("s3-access-key", "", "S3 access key")
		s3SecretKey = flag.String("s3-secret-key", "", "S3 secret key")
		s3URLFmt    = flag.String("s3-url-format", "", "public URL format with bucket and key placeholders, e.g. http://localhost:9000/%s/%s")
	)
	flag.Parse()

	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(*logLevelArg))
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", *logLevelArg, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	logger.Info("start and listen", "address", addr)
	logger.Info("otlp/gRPC", "address", otlpAddr, "service", serviceName)
	logger.Info("static-dir", "directory", staticDir)

	if *jwtSecret == "" {
		logger.Error("missing -jwt-secret")
		os.Exit(1)
	}

	if *otlpAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		grpcOptions := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock()}
		conn, err := grpc.DialContext(ctx, *otlpAddr, grpcOptions...)
		if err != nil {
			logger.Error("failed to create gRPC connection to collector", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		otelExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			logger.Error("failed to create trace exporter", "error", err)
			os.Exit(1)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(otelExporter))
		otel.SetTracerProvider(tp)
	}

	var (
		invitationStore db.InvitationStore
		guestStore      db.GuestStore
		userStore       db.UserStore
		draftStore      db.DraftStore
	)

	u, err := url.Parse(*dbStr)
	if err != nil {
		logger.Error("unable to parse db connection string", "error", err)
		os.Exit(1)
	}

	switch u.Scheme {
	case "kvdb":
		path := u.Host + u.Path
		kv, err := bolt.Open(path, 0600, nil)
		if err != nil {
			logger.Error("could not open kvdb", "error", err, "path", path)
			os.Exit(1)
		}
		defer kv.Close()

		invitationStore, err = kvdb.NewInvitationStore(kv)
		if err != nil {
			logger.Error("could not initialize invitation bucket", "error", err)
			os.Exit(1)
		}
		guestStore, err = kvdb.NewGuestStore(kv)
		if err != nil {
			logger.Error("could not initialize guest bucket", "error", err)
			os.Exit(1)
		}
		userStore, err = kvdb.NewUserStore(kv)
		if err != nil {
			logger.Error("could not initialize user bucket", "error", err)
			os.Exit(1)
		}
		draftStore, err = kvdb.NewDraftStore(kv)
		if err != nil {
			logger.Error("could not initialize draft bucket", "error", err)
			os.Exit(1)
		}
	case "postgres", "postgresql":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pg, err := postgres.Open(ctx, *dbStr)
		cancel()
		if err != nil {
			logger.Error("could not open postgres", "error", err)
			os.Exit(1)
		}
		defer pg.Close()

		invitationStore = postgres.NewInvitationStore(pg)
		guestStore = postgres.NewGuestStore(pg)
		userStore = postgres.NewUserStore(pg)
		draftStore = postgres.NewDraftStore(pg)
	default:
		logger.Error("unknown storage backend", "type", u.Scheme)
		os.Exit(1)
	}

	var uploader *storage.Uploader
	if *s3Endpoint != "" || *s3AccessKey != "" {
		if *s3URLFmt == "" {
			*s3URLFmt = *s3Endpoint + "/%s/%s"
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		uploader, err = storage.NewUploader(ctx, storage.Config{
			Region:       *s3Region,
			Endpoint:     *s3Endpoint,
			AccessKey:    *s3AccessKey,
			SecretKey:    *s3SecretKey,
			Bucket:       *s3Bucket,
			PublicURLFmt: *s3URLFmt,
		})
		cancel()
		if err != nil {
			logger.Error("could not initialize object storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("object storage not configured, uploads disabled")
	}

	srv := &http.Server{
		Addr: *addr,
		Handler: server.NewServer(
			*serviceName,
			*staticDir,
			[]byte(*jwtSecret),
			service.NewInvitationService(invitationStore, guestStore),
			service.NewGuestService(guestStore),
			userStore,
			draftStore,
			uploader,
		),
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("error during listen and serve", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}
