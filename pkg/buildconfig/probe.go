package buildconfig

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultProbeTimeout bounds a single network probe
	DefaultProbeTimeout = 5 * time.Second

	// maxConcurrentProbes bounds the ProbeAll fan-out
	maxConcurrentProbes = 8
)

// ProbeResult is the outcome of dialing one network profile
type ProbeResult struct {
	Name            string
	Endpoint        string
	ExpectedID      string
	RemoteNetworkID uint64
	ChainID         uint64
	Matches         bool
	Latency         time.Duration
	Err             error
}

// Probe asks the node behind profile for its network and chain ids and
// checks them against the profile's network_id.
func Probe(ctx context.Context, name string, profile NetworkProfile, timeout time.Duration) ProbeResult {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	res := ProbeResult{
		Name:       name,
		Endpoint:   profile.Endpoint(),
		ExpectedID: profile.NetworkID,
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	client, err := ethclient.DialContext(ctx, res.Endpoint)
	if err != nil {
		res.Err = fmt.Errorf("dial %s: %w", res.Endpoint, err)
		return res
	}
	defer client.Close()

	networkID, err := client.NetworkID(ctx)
	if err != nil {
		res.Err = fmt.Errorf("net_version: %w", err)
		return res
	}
	res.RemoteNetworkID = networkID.Uint64()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		res.Err = fmt.Errorf("eth_chainId: %w", err)
		return res
	}
	res.ChainID = chainID.Uint64()
	res.Latency = time.Since(start)
	res.Matches = profile.Matches(res.RemoteNetworkID)
	return res
}

// ProbeAll probes the named networks (all networks when names is empty)
// concurrently. Results are ordered by network name; a failing probe is
// reported on its result and never aborts the others.
func ProbeAll(ctx context.Context, cfg *BuildConfiguration, timeout time.Duration, names ...string) ([]ProbeResult, error) {
	if len(names) == 0 {
		names = cfg.NetworkNames()
	}
	for _, name := range names {
		if _, ok := cfg.Network(name); !ok {
			return nil, fmt.Errorf("unknown network %q", name)
		}
	}

	results := make([]ProbeResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for i, name := range names {
		i, name := i, name
		profile := cfg.Networks[name]
		g.Go(func() error {
			results[i] = Probe(gctx, name, profile, timeout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Name < results[b].Name })
	return results, nil
}
