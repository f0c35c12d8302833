package main

import (
	"fmt"
	"os"

	"focusflow/internal/config"
	"focusflow/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// StoreFactory creates repository instances based on environment
type StoreFactory struct {
	env Environment
	cfg *config.Config
}

// NewStoreFactory creates a new store factory for the given environment
func NewStoreFactory(env Environment, cfg *config.Config) *StoreFactory {
	return &StoreFactory{env: env, cfg: cfg}
}

// CreateRepository creates a repository instance based on the current environment
func (sf *StoreFactory) CreateRepository() (sqlite.Repository, error) {
	switch sf.env {
	case Development:
		return sf.createDevelopmentRepository()
	case Testing:
		return config.CreateTestRepository()
	case Production:
		return config.CreateRepository(sf.cfg)
	default:
		return config.CreateRepository(sf.cfg)
	}
}

// createDevelopmentRepository uses a local database file in the working
// directory so a dev build never touches the real data
func (sf *StoreFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New("ff.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("FF_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		// Default to production for safety
		return Production
	}
}
