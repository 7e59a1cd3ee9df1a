package engine

import (
	"time"

	"github.com/mpratt/provsync/internal/client"
	"github.com/mpratt/provsync/internal/errors"
	"github.com/mpratt/provsync/internal/store"
)

// Switch changes the active provider of one client and rewrites its live
// files to match the target's stored payload.
//
// The sequence under the store's write lock:
//
//  1. resolve the target provider
//  2. backfill: if another provider is current and the live file exists, its
//     on-disk content is captured into the outgoing provider's payload, so
//     hand edits made since the last switch are never lost
//  3. validate the target payload against the client's shape contract
//  4. write the payload to the live file, atomically
//  5. re-project the enabled MCP server set, since step 4 replaced it
//  6. read the live file back and mirror that exact content into the target
//     payload (adapters may normalize ordering or formatting on write)
//  7. mark the target current
//  8. persist the store
//
// Each step is individually atomic but the sequence is not a transaction: a
// failure leaves the live file at whichever step last completed, with the
// selection unchanged.
func (e *Engine) Switch(clientID, targetID string) error {
	adapter, err := e.adapter(clientID)
	if err != nil {
		return err
	}

	return e.store.Update(func(root *store.Root) (bool, error) {
		manager := root.Client(clientID)

		target := manager.Provider(targetID)
		if target == nil {
			return false, errors.Wrapf(errors.ErrProviderNotFound, "%s/%s", clientID, targetID)
		}

		if cur := manager.Current; cur != "" && cur != targetID {
			if outgoing := manager.Provider(cur); outgoing != nil {
				if err := e.backfill(adapter, outgoing); err != nil {
					return false, err
				}
			}
		}

		if err := adapter.ValidatePayload(target.Settings); err != nil {
			return false, err
		}

		if err := adapter.WriteLive(target.Settings); err != nil {
			return false, err
		}

		if err := e.projectLocked(root, clientID, adapter); err != nil {
			return false, err
		}

		live, err := adapter.ReadLive()
		if err != nil {
			return false, errors.Wrap(err, "reading back live configuration")
		}
		target.Settings = live

		manager.Current = targetID
		target.TouchEndpoint(adapter.EndpointURL(live), time.Now())

		e.logger.Info("provider switched",
			"client", clientID, "provider", targetID)
		return true, nil
	})
}

// backfill captures the live file's current content into the outgoing
// provider's payload. A missing live file means there is nothing to capture.
func (e *Engine) backfill(adapter client.Adapter, outgoing *store.Provider) error {
	exists, err := adapter.LiveExists()
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	live, err := adapter.ReadLive()
	if err != nil {
		return errors.Wrapf(err, "capturing live configuration for provider %s", outgoing.ID)
	}
	outgoing.Settings = live

	e.logger.Debug("backfilled outgoing provider from live file",
		"provider", outgoing.ID)
	return nil
}
