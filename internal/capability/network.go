package capability

import (
	"context"
	"fmt"

	"github.com/neutron-wm/neutron/internal/project"
)

// Network switches the VPN connection: it disconnects while the session
// is prepared and connects once everything has launched.
type Network struct {
	NopPhases

	connection string
	deps       Deps
}

// NewNetwork creates the network capability. The project's vpn wins over
// the configured default connection.
func NewNetwork(n *project.Network, deps Deps) *Network {
	connection := n.VPN
	if connection == "" {
		connection = deps.Settings.Network.DefaultConnection
	}
	return &Network{connection: connection, deps: deps}
}

func (n *Network) Name() string { return "network" }

// Connection returns the connection Settle switches to.
func (n *Network) Connection() string { return n.connection }

func (n *Network) Prepare(ctx context.Context) error {
	if n.deps.Settings.Network.Disconnect == "" {
		return nil
	}
	_, err := n.deps.Sink.Run(ctx, n.deps.Settings.Network.Disconnect)
	return err
}

func (n *Network) Settle(ctx context.Context) error {
	if n.deps.Settings.Network.Connect == "" || n.connection == "" {
		return nil
	}
	_, err := n.deps.Sink.Run(ctx, fmt.Sprintf(n.deps.Settings.Network.Connect, n.connection))
	return err
}
