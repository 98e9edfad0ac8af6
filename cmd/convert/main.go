// Copyright (C) 2025 the enchanted-wedding-scrolls maintainers
// See root-dir/LICENSE for more information

// Command convert copies a kvdb database file into postgres. It exists for
// deployments that started on the single-file backend and outgrew it. The
// target schema is migrated first, rows keep their ids so invitation links
// stay valid.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db/kvdb"
	"github.com/JAlejandroRP/enchanted-wedding-scrolls/internal/db/postgres"
)

func main() {
	var (
		fromPath = flag.String("from", "testdata/wedding.db", "kvdb file to read")
		toDSN    = flag.String("to", "", "postgres DSN to write into, required")
	)
	flag.Parse()

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	logger := slog.New(jsonHandler)

	if *toDSN == "" {
		logger.Error("missing -to")
		os.Exit(1)
	}

	ctx := context.Background()

	kv, err := bolt.Open(*fromPath, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		logger.Error("could not open kvdb", "error", err, "path", *fromPath)
		os.Exit(1)
	}
	defer kv.Close()

	pg, err := postgres.Open(ctx, *toDSN)
	if err != nil {
		logger.Error("could not open postgres", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	invitationSrc, err := kvdb.NewInvitationStore(kv)
	if err != nil {
		logger.Error("could not open invitation bucket", "error", err)
		os.Exit(1)
	}
	guestSrc, err := kvdb.NewGuestStore(kv)
	if err != nil {
		logger.Error("could not open guest bucket", "error", err)
		os.Exit(1)
	}
	userSrc, err := kvdb.NewUserStore(kv)
	if err != nil {
		logger.Error("could not open user bucket", "error", err)
		os.Exit(1)
	}
	draftSrc, err := kvdb.NewDraftStore(kv)
	if err != nil {
		logger.Error("could not open draft bucket", "error", err)
		os.Exit(1)
	}

	logger.Info("start converting", "from", *fromPath)

	users, err := userSrc.AllUsers(ctx)
	if err != nil {
		logger.Error("could not read users", "error", err)
		os.Exit(1)
	}
	userDst := postgres.NewUserStore(pg)
	for _, u := range users {
		if err := userDst.CreateUser(ctx, u); err != nil {
			logger.Error("could not write user", "error", err, "id", u.ID)
			os.Exit(1)
		}
	}
	logger.Info("users converted", "count", len(users))

	invs, err := invitationSrc.AllInvitations(ctx)
	if err != nil {
		logger.Error("could not read invitations", "error", err)
		os.Exit(1)
	}
	invitationDst := postgres.NewInvitationStore(pg)
	for _, inv := range invs {
		if err := invitationDst.CreateInvitation(ctx, inv); err != nil {
			logger.Error("could not write invitation", "error", err, "id", inv.ID)
			os.Exit(1)
		}
	}
	logger.Info("invitations converted", "count", len(invs))

	guests, err := guestSrc.AllGuests(ctx)
	if err != nil {
		logger.Error("could not read guests", "error", err)
		os.Exit(1)
	}
	guestDst := postgres.NewGuestStore(pg)
	if len(guests) > 0 {
		if _, err := guestDst.CreateGuests(ctx, guests); err != nil {
			logger.Error("could not write guests", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("guests converted", "count", len(guests))

	drafts, err := draftSrc.AllDrafts(ctx)
	if err != nil {
		logger.Error("could not read drafts", "error", err)
		os.Exit(1)
	}
	draftDst := postgres.NewDraftStore(pg)
	for userID, data := range drafts {
		if err := draftDst.PutDraft(ctx, userID, data); err != nil {
			logger.Error("could not write draft", "error", err, "user", userID)
			os.Exit(1)
		}
	}
	logger.Info("drafts converted", "count", len(drafts))

	logger.Info("finished converting")
}
