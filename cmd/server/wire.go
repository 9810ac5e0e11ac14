// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"bhoomi_backend/internal/app"
	"bhoomi_backend/internal/audit"
	"bhoomi_backend/internal/auth"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/firebase"
	"bhoomi_backend/internal/jobs"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/platform/cache"
	"bhoomi_backend/internal/platform/database"
	"bhoomi_backend/internal/platform/elasticsearch"
	"bhoomi_backend/internal/platform/logger"
	"bhoomi_backend/internal/proposal"
	"bhoomi_backend/internal/shared"
	"bhoomi_backend/internal/user"
	"bhoomi_backend/internal/verification"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform layer
		logger.New,
		database.NewGORM,
		cache.NewCache,
		elasticsearch.NewClient,
		firebase.NewService,
		provideCleanup,

		// Token + user core
		auth.NewJWTService,
		user.NewGORMRepository,
		audit.NewGORMRepository,
		audit.NewService,
		wire.Bind(new(audit.Recorder), new(*audit.Service)),
		wire.Bind(new(audit.Reader), new(*audit.Service)),
		audit.NewHandler,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(shared.UserResolver), new(*user.ServiceImplementation)),

		// Auth surfaces
		auth.NewOAuthService,
		auth.NewHandler,
		user.NewHandler,

		// Listings
		listing.NewGORMRepository,
		listing.NewService,
		wire.Bind(new(listing.Service), new(*listing.ServiceImplementation)),
		listing.NewHandler,

		// Verification workflow
		verification.NewGORMRepository,
		verification.NewService,
		wire.Bind(new(verification.Service), new(*verification.ServiceImplementation)),
		wire.Bind(new(verification.ListingCacheInvalidator), new(*cache.Cache)),
		verification.NewHandler,

		// Proposals
		proposal.NewGORMRepository,
		proposal.NewService,
		wire.Bind(new(proposal.Service), new(*proposal.ServiceImplementation)),
		proposal.NewHandler,

		// Background jobs
		jobs.NewStaleVerificationJob,

		// Application layer
		app.NewServer,
	)
	return nil, nil, nil
}
