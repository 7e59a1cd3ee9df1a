package engine

import (
	"github.com/mpratt/provsync/internal/client"
	"github.com/mpratt/provsync/internal/store"
)

// ClientStatus is the per-client summary shown by the status command.
type ClientStatus struct {
	Client         string
	Current        string
	CurrentName    string
	Providers      int
	EnabledServers int
	TotalServers   int
	LiveExists     bool
	SupportsMCP    bool
}

// Status reports the state of every supported client.
func (e *Engine) Status() ([]ClientStatus, error) {
	var out []ClientStatus

	for _, adapter := range client.All(e.resolver) {
		exists, err := adapter.LiveExists()
		if err != nil {
			return nil, err
		}

		status := ClientStatus{
			Client:      adapter.ID(),
			LiveExists:  exists,
			SupportsMCP: adapter.SupportsMCP(),
		}

		e.store.Read(func(root *store.Root) {
			manager := root.Client(adapter.ID())
			status.Current = manager.Current
			status.Providers = len(manager.Providers)
			if p := manager.Provider(manager.Current); p != nil {
				status.CurrentName = p.Name
			}

			cfg := root.Servers(adapter.ID())
			status.TotalServers = len(cfg)
			status.EnabledServers = len(cfg.Enabled())
		})

		out = append(out, status)
	}
	return out, nil
}
