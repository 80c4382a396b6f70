// Package queue carries catalog change notifications over RabbitMQ. A
// publisher announces that some resources changed upstream; the consumer
// drops the cached responses of those resources.
package queue

import (
    "errors"
    "fmt"
    "strings"
)

// CatalogChangedEvent is published when rows behind one or more resources
// change. An empty Resources list means everything.
type CatalogChangedEvent struct {
    Resources []string `json:"resources"`
    Reason    string   `json:"reason,omitempty"`
    ChangedAt string   `json:"changed_at"`
}

// Resources that own cached responses.
var knownResources = map[string]bool{
    "films": true, "rentals": true, "stores": true,
    "actors": true, "categories": true, "languages": true,
}

var errUnknownResource = errors.New("unknown resource")

// Normalize lowercases and de-duplicates the resource list and rejects
// names the API does not serve.
func (ev *CatalogChangedEvent) Normalize() error {
    seen := make(map[string]bool, len(ev.Resources))
    out := ev.Resources[:0]
    for _, r := range ev.Resources {
        r = strings.ToLower(strings.TrimSpace(r))
        if r == "" || seen[r] {
            continue
        }
        if !knownResources[r] {
            return fmt.Errorf("%w: %q", errUnknownResource, r)
        }
        seen[r] = true
        out = append(out, r)
    }
    ev.Resources = out
    return nil
}
