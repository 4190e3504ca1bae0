// Package discovery advertises the running instance on the local network
// over mDNS, so clients on the same LAN can find the API without
// configuration.
package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"

	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/version"
)

const (
	// ServiceType is the registered mDNS service type.
	ServiceType = "_watchdeck._tcp"
	// ServiceDomain is the mDNS domain.
	ServiceDomain = "local."
)

// Advertiser owns the mDNS registration lifetime.
type Advertiser struct {
	instance string
	port     int
	server   *zeroconf.Server
	logger   logger.Logger
}

func NewAdvertiser(instance string, port int, log logger.Logger) *Advertiser {
	return &Advertiser{
		instance: instance,
		port:     port,
		logger:   log,
	}
}

// Start registers the service. Registration stays up until Stop.
func (a *Advertiser) Start() error {
	txt := []string{
		"version=" + version.Version,
		"api=v1",
	}

	server, err := zeroconf.Register(a.instance, ServiceType, ServiceDomain, a.port, txt, nil)
	if err != nil {
		return fmt.Errorf("failed to register mdns service: %w", err)
	}
	a.server = server

	a.logger.Info("mdns advertisement started",
		logger.String("instance", a.instance),
		logger.String("service", ServiceType),
		logger.Int("port", a.port))
	return nil
}

// Stop withdraws the advertisement.
func (a *Advertiser) Stop() {
	if a.server == nil {
		return
	}
	a.server.Shutdown()
	a.server = nil
	a.logger.Info("mdns advertisement stopped")
}
