// Command authority-bench seeds a Core with users and groups and drives
// concurrent HasPermission/CanAffectUser calls against it, reporting
// throughput and latency percentiles.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	authority "github.com/ironforge/authority"
	"github.com/ironforge/authority/storage/redisprovider"
)

func main() {
	var (
		users       = flag.Int("users", 100000, "number of users to seed")
		groups      = flag.Int("groups", 50, "number of groups to seed, chained into one parent/child ladder")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "calls per phase (HasPermission, then CanAffectUser)")
		redisAddr   = flag.String("redis-addr", "", "redis address to persist through storage/redisprovider; empty uses an embedded miniredis")
		prefix      = flag.String("prefix", "bench", "storage/redisprovider key prefix")
	)
	flag.Parse()

	if *users <= 0 || *groups <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, groups, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	client, cleanup, err := connectRedis(*redisAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect redis: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	provider, err := redisprovider.NewProvider(client, *prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new provider: %v\n", err)
		os.Exit(1)
	}

	core, err := authority.New().WithStorageProvider(provider).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build core: %v\n", err)
		os.Exit(1)
	}
	defer core.Close()

	detach := redisprovider.Attach(core, provider)
	defer detach()

	groupNames := seedGroups(core, *groups)
	fmt.Printf("seeding %d users across %d groups...\n", *users, *groups)
	start := time.Now()
	for i := 0; i < *users; i++ {
		group := groupNames[i%len(groupNames)]
		if status := core.CreateUser(uint64(i+1), i%10, []string{group}, nil); status != authority.Success {
			fmt.Fprintf(os.Stderr, "seed user %d: %v\n", i+1, status)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(start).Round(time.Millisecond))

	permStats := runPhase(*ops, *concurrency, func(r *rand.Rand) bool {
		userID := uint64(r.Intn(*users) + 1)
		group := groupNames[r.Intn(len(groupNames))]
		status, _ := core.HasPermission(userID, group+".access")
		return status == authority.Allow || status == authority.PermNotFound
	})
	affectStats := runPhase(*ops, *concurrency, func(r *rand.Rand) bool {
		actor := uint64(r.Intn(*users) + 1)
		target := uint64(r.Intn(*users) + 1)
		_, err := core.CanAffectUser(actor, target)
		return err == nil
	})

	fmt.Println("---- results ----")
	printStats("has-permission", permStats)
	printStats("can-affect-user", affectStats)
}

func connectRedis(addr string) (redis.UniversalClient, func(), error) {
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
		fmt.Printf("using embedded miniredis at %s\n", mr.Addr())
		return client, func() { _ = client.Close(); mr.Close() }, nil
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
	fmt.Printf("using redis at %s\n", addr)
	return client, func() { _ = client.Close() }, nil
}

func seedGroups(core *authority.Core, n int) []string {
	names := make([]string, n)
	parent := ""
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("g%d", i)
		core.CreateGroup(name, []string{name + ".access"}, i, parent)
		names[i] = name
		parent = name
	}
	return names
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func runPhase(ops, concurrency int, call func(*rand.Rand) bool) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		mu        sync.Mutex
		latencies = make([]time.Duration, 0, ops)
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(worker)*7919 + 1))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				ok := call(r)
				d := time.Since(t0)
				if !ok {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
