package main

import (
	"github.com/inkwellhq/inkwell/apiserver/internal/authn"
	"github.com/inkwellhq/inkwell/apiserver/internal/blogs"
	blogsMongodb "github.com/inkwellhq/inkwell/apiserver/internal/blogs/mongodb"
	blogsREST "github.com/inkwellhq/inkwell/apiserver/internal/blogs/rest"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/restmachinery"
	"github.com/inkwellhq/inkwell/apiserver/internal/sessions"
	sessionsMongodb "github.com/inkwellhq/inkwell/apiserver/internal/sessions/mongodb"
	sessionsREST "github.com/inkwellhq/inkwell/apiserver/internal/sessions/rest"
	"github.com/inkwellhq/inkwell/apiserver/internal/users"
	usersMongodb "github.com/inkwellhq/inkwell/apiserver/internal/users/mongodb"
	usersREST "github.com/inkwellhq/inkwell/apiserver/internal/users/rest"
	"github.com/inkwellhq/inkwell/internal/mongodb"
)

func getAPIServerFromEnvironment() (restmachinery.Server, error) {

	// API server config
	apiConfig, err := restmachinery.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Common
	database, err := mongodb.Database()
	if err != nil {
		return nil, err
	}
	baseStore := &mongodb.BaseStore{Database: database}

	// Users
	usersStore, err := usersMongodb.NewStore(database)
	if err != nil {
		return nil, err
	}
	usersService := users.NewService(usersStore)

	// Sessions-- depends on users
	tokenConfig, err := sessions.GetTokenConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	revocationsStore, err := sessionsMongodb.NewStore(database)
	if err != nil {
		return nil, err
	}
	sessionsService := sessions.NewService(
		usersStore,
		revocationsStore,
		tokenConfig,
	)

	// Blogs-- depends on users for author hydration
	blogsStore, err := blogsMongodb.NewStore(database)
	if err != nil {
		return nil, err
	}
	blogsService := blogs.NewService(blogsStore, usersStore)

	baseEndpoints := &restmachinery.BaseEndpoints{
		TokenAuthFilter: authn.NewTokenAuthFilter(
			sessionsService.ValidateToken,
		),
	}

	return restmachinery.NewServer(
		apiConfig,
		baseEndpoints,
		[]restmachinery.Endpoints{
			sessionsREST.NewEndpoints(baseEndpoints, sessionsService),
			usersREST.NewEndpoints(baseEndpoints, usersService),
			blogsREST.NewEndpoints(baseEndpoints, blogsService),
		},
		baseStore.CheckHealth,
	), nil
}
