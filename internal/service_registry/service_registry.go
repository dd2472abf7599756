package service_registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/0PandaDEV/ziit-agent/internal/services"
	"github.com/0PandaDEV/ziit-agent/internal/tracker"
	"github.com/0PandaDEV/ziit-agent/internal/utils"
	"github.com/rs/zerolog"
)

// Service is the interface for all background services.
type Service interface {
	Start() error
	Stop() error
}

// ServiceRegistry manages the lifecycle of the agent's background services.
type ServiceRegistry struct {
	services    map[string]Service // Stores registered services
	serviceKeys []string           // Maintains order of service registration
	Logger      zerolog.Logger
}

// NewServiceRegistry initializes a new service registry.
func NewServiceRegistry(logger zerolog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[string]Service),
		Logger:   logger,
	}
}

// RegisterService adds a new service to the registry.
func (sr *ServiceRegistry) RegisterService(name string, svc Service) {
	if _, exists := sr.services[name]; exists {
		sr.Logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	sr.services[name] = svc
	sr.serviceKeys = append(sr.serviceKeys, name)
	sr.Logger.Info().Msgf("Registered service: %s", name)
}

// StartServices initiates all registered services in order.
// If a service fails to start, it stops already started services.
func (sr *ServiceRegistry) StartServices() error {
	startedServices := []string{}

	for _, name := range sr.serviceKeys {
		svc := sr.services[name]
		sr.Logger.Info().Msgf("Starting service: %s", name)
		if err := svc.Start(); err != nil {
			sr.Logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			// Stop already started services before returning
			sr.Logger.Warn().Msg("Stopping already started services due to startup failure...")
			for i := len(startedServices) - 1; i >= 0; i-- {
				_ = sr.services[startedServices[i]].Stop()
			}
			return err
		}
		startedServices = append(startedServices, name)
	}

	return nil
}

// StopServices stops all services in reverse order.
func (sr *ServiceRegistry) StopServices() error {
	var stopErrors []error
	for i := len(sr.serviceKeys) - 1; i >= 0; i-- {
		name := sr.serviceKeys[i]
		if err := sr.services[name].Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			sr.Logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}

// RegisterServices registers the scheduled services based on configuration.
func (sr *ServiceRegistry) RegisterServices(config *utils.Config, activityTracker *tracker.Tracker,
	engine *tracker.DeliveryEngine) {

	// Ordered service definitions with inline constructors
	servicesInOrder := []struct {
		name        string
		constructor func() Service
	}{
		{
			name: "idle-heartbeat",
			constructor: func() Service {
				return services.NewIdleHeartbeatService(
					time.Duration(config.Intervals.Heartbeat)*time.Second,
					activityTracker,
					sr.Logger,
				)
			},
		},
		{
			name: "sync",
			constructor: func() Service {
				return services.NewSyncService(
					time.Duration(config.Intervals.Sync)*time.Second,
					engine,
					sr.Logger,
				)
			},
		},
		{
			name: "summary",
			constructor: func() Service {
				return services.NewSummaryService(
					time.Duration(config.Intervals.Summary)*time.Second,
					engine,
					sr.Logger,
				)
			},
		},
	}

	registeredServices := []string{}
	for _, svc := range servicesInOrder {
		sr.RegisterService(svc.name, svc.constructor())
		registeredServices = append(registeredServices, svc.name)
	}

	sr.Logger.Info().Msgf("Registered services in order: %v", registeredServices)
}
